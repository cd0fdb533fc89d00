package market

import (
	"math"
	"time"
)

// Snapshot captures a per-asset market detail bundle. It is fetched on
// demand and never persisted. Numeric fields the upstream response omitted
// are set to NaN so consumers can tell "absent" from a literal zero.
type Snapshot struct {
	AssetID      string    // Canonical market-data key, e.g. "bitcoin"
	Symbol       string    // Display trading symbol, e.g. "BTC"
	Name         string    // Human-readable asset name
	CurrentPrice float64   // Spot price in the quote currency
	Change24h    float64   // 24h price change, percent
	Change7d     float64   // 7d price change, percent
	Volume24h    float64   // 24h trading volume in the quote currency
	MarketCap    float64   // Market capitalization in the quote currency
	LastUpdated  time.Time // Upstream last-updated timestamp
	Links        []string  // Canonical external links, homepage first
}

// HomepageURL returns the asset's primary homepage, or "" when the upstream
// response carried no links.
func (s *Snapshot) HomepageURL() string {
	if s == nil || len(s.Links) == 0 {
		return ""
	}
	return s.Links[0]
}

// DisplayName prefers the asset name, then the symbol, then the raw id.
func (s *Snapshot) DisplayName() string {
	switch {
	case s == nil:
		return ""
	case s.Name != "":
		return s.Name
	case s.Symbol != "":
		return s.Symbol
	default:
		return s.AssetID
	}
}

// IsNumber reports whether v is a well-formed numeric field value.
func IsNumber(v float64) bool {
	return !math.IsNaN(v)
}

// PricePoint is one entry of a price-history series, in source order.
type PricePoint struct {
	Time  time.Time
	Price float64
}
