package portfolio

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Position is one user-held lot. Quantity and cost basis are independent
// inputs; the unit purchase price is derived, never stored. Positions are
// immutable once created, the only mutation is deletion.
type Position struct {
	ID         string
	UserID     string
	AssetID    string // canonical market-data key, e.g. "bitcoin"
	Symbol     string // display symbol, e.g. "BTC"
	Quantity   decimal.Decimal
	CostBasis  decimal.Decimal // total quote-currency amount invested
	AcquiredAt time.Time
}

// Validate rejects positions the metrics engine cannot price. Quantity must
// be strictly positive so the derived purchase price is always defined.
func (p Position) Validate() error {
	if strings.TrimSpace(p.AssetID) == "" {
		return errors.New("portfolio: position asset id is required")
	}
	if !p.Quantity.IsPositive() {
		return errors.New("portfolio: position quantity must be positive")
	}
	if p.CostBasis.IsNegative() {
		return errors.New("portfolio: position cost basis cannot be negative")
	}
	return nil
}
