package portfolio

import "github.com/shopspring/decimal"

// Metrics holds the derived numbers for one position.
type Metrics struct {
	PositionID    string
	AssetID       string
	PurchasePrice decimal.Decimal // cost basis per unit
	CurrentValue  decimal.Decimal
	Profit        decimal.Decimal
	ProfitPercent decimal.Decimal
	Priced        bool // false when no spot price was available
}

// Summary aggregates a whole portfolio.
type Summary struct {
	TotalValue      decimal.Decimal
	TotalInvestment decimal.Decimal
	TotalProfit     decimal.Decimal
	ProfitPercent   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Valuation combines positions with already-resolved spot prices. Pure
// computation, no I/O. An asset missing from prices contributes zero value
// and is flagged unpriced; the rest of the portfolio is unaffected.
// Percentages over a zero denominator come back as 0, not an error.
func Valuation(positions []Position, prices map[string]float64) (Summary, []Metrics) {
	var summary Summary
	metrics := make([]Metrics, 0, len(positions))

	for _, pos := range positions {
		spot, ok := prices[pos.AssetID]
		m := Metrics{
			PositionID: pos.ID,
			AssetID:    pos.AssetID,
			Priced:     ok,
		}

		price := decimal.Zero
		if ok {
			price = decimal.NewFromFloat(spot)
		}
		m.CurrentValue = price.Mul(pos.Quantity)
		m.Profit = m.CurrentValue.Sub(pos.CostBasis)
		if pos.Quantity.IsPositive() {
			m.PurchasePrice = pos.CostBasis.Div(pos.Quantity)
		}
		if pos.CostBasis.IsPositive() {
			m.ProfitPercent = m.Profit.Div(pos.CostBasis).Mul(hundred)
		}

		summary.TotalValue = summary.TotalValue.Add(m.CurrentValue)
		summary.TotalInvestment = summary.TotalInvestment.Add(pos.CostBasis)
		metrics = append(metrics, m)
	}

	summary.TotalProfit = summary.TotalValue.Sub(summary.TotalInvestment)
	if summary.TotalInvestment.IsPositive() {
		summary.ProfitPercent = summary.TotalProfit.Div(summary.TotalInvestment).Mul(hundred)
	}
	return summary, metrics
}

// AssetIDs lists the asset identifier of every position, duplicates
// included; quote resolution dedupes on its side.
func AssetIDs(positions []Position) []string {
	ids := make([]string, 0, len(positions))
	for _, pos := range positions {
		ids = append(ids, pos.AssetID)
	}
	return ids
}
