package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"coinfolio-api/pkg/market"
)

const defaultHistoryDays = 30

// SpotPrice returns the current USD price for the asset.
func (c *Client) SpotPrice(ctx context.Context, assetID string) (float64, error) {
	query := url.Values{
		"ids":           {assetID},
		"vs_currencies": {quoteCurrency},
	}
	var payload simplePriceResponse
	if err := c.getJSON(ctx, "simple/price", query, &payload); err != nil {
		return 0, fmt.Errorf("coingecko: spot price %s: %w", assetID, err)
	}

	quote, ok := payload[assetID]
	if !ok {
		return 0, fmt.Errorf("%w: no entry for %s", market.ErrInvalidPriceData, assetID)
	}
	price := quote[quoteCurrency]
	if price == nil {
		return 0, fmt.Errorf("%w: no %s quote for %s", market.ErrInvalidPriceData, quoteCurrency, assetID)
	}
	return *price, nil
}

// PriceHistory returns the USD price series for the last days days in
// source chronological order. days <= 0 selects the 30 day default.
func (c *Client) PriceHistory(ctx context.Context, assetID string, days int) ([]market.PricePoint, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	query := url.Values{
		"vs_currency": {quoteCurrency},
		"days":        {strconv.Itoa(days)},
	}
	var payload marketChartResponse
	if err := c.getJSON(ctx, "coins/"+url.PathEscape(assetID)+"/market_chart", query, &payload); err != nil {
		return nil, fmt.Errorf("coingecko: price history %s: %w", assetID, err)
	}

	if payload.Prices == nil {
		return nil, fmt.Errorf("%w: missing price series for %s", market.ErrInvalidHistoryData, assetID)
	}
	points := make([]market.PricePoint, 0, len(payload.Prices))
	for _, pair := range payload.Prices {
		if len(pair) < 2 {
			return nil, fmt.Errorf("%w: malformed price point for %s", market.ErrInvalidHistoryData, assetID)
		}
		points = append(points, market.PricePoint{
			Time:  time.UnixMilli(int64(pair[0])).UTC(),
			Price: pair[1],
		})
	}
	return points, nil
}
