package coingecko

import (
	"context"
	"net/http"
	"time"

	"coinfolio-api/pkg/market"
)

const defaultProviderTimeout = 8 * time.Second

// Provider adapts Client to the market.Provider contract with a per-call
// timeout.
type Provider struct {
	client  *Client
	timeout time.Duration
}

type providerConfig struct {
	timeout       time.Duration
	clientOptions []Option
}

// ProviderOption customises the CoinGecko provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

// NewProvider constructs a CoinGecko market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{
		timeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:  NewClient(cfg.clientOptions...),
		timeout: cfg.timeout,
	}
}

func init() {
	market.RegisterProvider("coingecko", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.MaxAttempts > 0 {
			clientOptions = append(clientOptions, WithMaxAttempts(cfg.MaxAttempts))
		}
		if cfg.RateLimitRPS > 0 {
			clientOptions = append(clientOptions, WithRateLimit(cfg.RateLimitRPS))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewProvider(opts...), nil
	})
}

// SpotPrice implements market.Provider.
func (p *Provider) SpotPrice(ctx context.Context, assetID string) (float64, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.SpotPrice(ctx, assetID)
}

// MarketDetail implements market.Provider.
func (p *Provider) MarketDetail(ctx context.Context, assetID string) (*market.Snapshot, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.MarketDetail(ctx, assetID)
}

// PriceHistory implements market.Provider.
func (p *Provider) PriceHistory(ctx context.Context, assetID string, days int) ([]market.PricePoint, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.PriceHistory(ctx, assetID, days)
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}
