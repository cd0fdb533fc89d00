package coingecko

import "time"

// simplePriceResponse maps asset id -> currency -> price. Prices are
// pointers so a JSON null is distinguishable from a literal zero.
type simplePriceResponse map[string]map[string]*float64

// coinDetailResponse covers the subset of /coins/<id> this client consumes.
type coinDetailResponse struct {
	ID          string     `json:"id"`
	Symbol      string     `json:"symbol"`
	Name        string     `json:"name"`
	LastUpdated *time.Time `json:"last_updated"`

	Links *struct {
		Homepage []string `json:"homepage"`
	} `json:"links"`

	MarketData *struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  *float64           `json:"price_change_percentage_7d"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		MarketCap                map[string]float64 `json:"market_cap"`
	} `json:"market_data"`
}

// marketChartResponse is the /coins/<id>/market_chart payload. Each prices
// entry is a [timestamp_ms, price] pair.
type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}
