package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"coinfolio-api/pkg/market"
)

// MarketDetail fetches /coins/<id> and normalizes its market-data section
// into a snapshot. Individual numeric fields the response omitted come back
// as NaN; a missing market-data section fails with ErrInvalidMarketData.
func (c *Client) MarketDetail(ctx context.Context, assetID string) (*market.Snapshot, error) {
	query := url.Values{
		"localization":   {"false"},
		"tickers":        {"false"},
		"market_data":    {"true"},
		"community_data": {"false"},
		"developer_data": {"false"},
	}
	var payload coinDetailResponse
	if err := c.getJSON(ctx, "coins/"+url.PathEscape(assetID), query, &payload); err != nil {
		return nil, fmt.Errorf("coingecko: market detail %s: %w", assetID, err)
	}

	md := payload.MarketData
	if md == nil {
		return nil, fmt.Errorf("%w: missing market_data for %s", market.ErrInvalidMarketData, assetID)
	}

	snap := &market.Snapshot{
		AssetID:      assetID,
		Symbol:       strings.ToUpper(payload.Symbol),
		Name:         payload.Name,
		CurrentPrice: quoteValue(md.CurrentPrice),
		Change24h:    floatOrNaN(md.PriceChangePercentage24h),
		Change7d:     floatOrNaN(md.PriceChangePercentage7d),
		Volume24h:    quoteValue(md.TotalVolume),
		MarketCap:    quoteValue(md.MarketCap),
	}
	if payload.ID != "" {
		snap.AssetID = payload.ID
	}
	if payload.LastUpdated != nil {
		snap.LastUpdated = payload.LastUpdated.UTC()
	}
	if payload.Links != nil {
		for _, link := range payload.Links.Homepage {
			if link = strings.TrimSpace(link); link != "" {
				snap.Links = append(snap.Links, link)
			}
		}
	}
	return snap, nil
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func quoteValue(m map[string]float64) float64 {
	if v, ok := m[quoteCurrency]; ok {
		return v
	}
	return math.NaN()
}
