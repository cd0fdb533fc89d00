package market

import "context"

// PriceSource answers single-asset spot price lookups.
type PriceSource interface {
	// SpotPrice returns the current quote-currency price for the asset
	// identified by its canonical market-data key (e.g. "bitcoin").
	SpotPrice(ctx context.Context, assetID string) (float64, error)
}

// Provider exposes read-only market data from one upstream source.
type Provider interface {
	PriceSource
	// MarketDetail returns the normalized market snapshot for an asset.
	MarketDetail(ctx context.Context, assetID string) (*Snapshot, error)
	// PriceHistory returns the chronological price series covering the last
	// days days. days <= 0 selects the provider default window.
	PriceHistory(ctx context.Context, assetID string, days int) ([]PricePoint, error)
}
