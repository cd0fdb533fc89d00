package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"coinfolio-api/pkg/portfolio"
)

// ErrNotFound is returned when a position does not exist or belongs to
// another user.
var ErrNotFound = errors.New("repo: position not found")

// PositionsRepo persists user positions. Positions are immutable once
// created; the only mutation is deletion, and every read and delete is
// scoped to the owning user.
type PositionsRepo interface {
	Insert(ctx context.Context, pos *portfolio.Position) error
	ListByUser(ctx context.Context, userID string) ([]portfolio.Position, error)
	Delete(ctx context.Context, id, userID string) error
}

type positionsRepo struct {
	conn sqlx.SqlConn
}

// NewPositionsRepo builds a PositionsRepo over a SQL connection.
func NewPositionsRepo(conn sqlx.SqlConn) PositionsRepo {
	return &positionsRepo{conn: conn}
}

// positionRow mirrors the positions table.
type positionRow struct {
	ID         string          `db:"id"`
	UserID     string          `db:"user_id"`
	AssetID    string          `db:"asset_id"`
	Symbol     string          `db:"symbol"`
	Quantity   decimal.Decimal `db:"quantity"`
	CostBasis  decimal.Decimal `db:"cost_basis"`
	AcquiredAt time.Time       `db:"acquired_at"`
}

func (r *positionsRepo) Insert(ctx context.Context, pos *portfolio.Position) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	const q = `
INSERT INTO positions (id, user_id, asset_id, symbol, quantity, cost_basis, acquired_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.conn.ExecCtx(ctx, q,
		pos.ID, pos.UserID, pos.AssetID, pos.Symbol,
		pos.Quantity, pos.CostBasis, pos.AcquiredAt,
	); err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func (r *positionsRepo) ListByUser(ctx context.Context, userID string) ([]portfolio.Position, error) {
	const q = `
SELECT id, user_id, asset_id, symbol, quantity, cost_basis, acquired_at
FROM positions
WHERE user_id = $1
ORDER BY acquired_at, id`
	var rows []positionRow
	if err := r.conn.QueryRowsCtx(ctx, &rows, q, userID); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	positions := make([]portfolio.Position, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, portfolio.Position{
			ID:         row.ID,
			UserID:     row.UserID,
			AssetID:    row.AssetID,
			Symbol:     row.Symbol,
			Quantity:   row.Quantity,
			CostBasis:  row.CostBasis,
			AcquiredAt: row.AcquiredAt,
		})
	}
	return positions, nil
}

func (r *positionsRepo) Delete(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM positions WHERE id = $1 AND user_id = $2`
	res, err := r.conn.ExecCtx(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
