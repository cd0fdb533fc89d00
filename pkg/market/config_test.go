package market

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type noopProvider struct{ name string }

func (p *noopProvider) SpotPrice(context.Context, string) (float64, error) { return 0, nil }
func (p *noopProvider) MarketDetail(context.Context, string) (*Snapshot, error) {
	return &Snapshot{}, nil
}
func (p *noopProvider) PriceHistory(context.Context, string, int) ([]PricePoint, error) {
	return nil, nil
}

func init() {
	RegisterProvider("noop", func(name string, cfg *ProviderConfig) (Provider, error) {
		return &noopProvider{name: name}, nil
	})
}

func TestLoadConfigFromReader(t *testing.T) {
	yaml := `
default: primary
providers:
  primary:
    type: noop
    base_url: https://example.test/api
    timeout: 8s
    http_timeout: 10s
    max_attempts: 4
    rate_limit_rps: 0.5
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Equal(t, "primary", cfg.Default)

	provider := cfg.Providers["primary"]
	require.NotNil(t, provider)
	require.Equal(t, "noop", provider.Type)
	require.Equal(t, 8*time.Second, provider.Timeout)
	require.Equal(t, 10*time.Second, provider.HTTPTimeout)
	require.Equal(t, 4, provider.MaxAttempts)
	require.InDelta(t, 0.5, provider.RateLimitRPS, 1e-9)

	providers, err := cfg.BuildProviders()
	require.NoError(t, err)
	require.Contains(t, providers, "primary")
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_MARKET_BASE_URL", "https://mirror.test/api")
	yaml := `
default: primary
providers:
  primary:
    type: noop
    base_url: ${TEST_MARKET_BASE_URL}
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Equal(t, "https://mirror.test/api", cfg.Providers["primary"].BaseURL)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no providers",
			yaml: `default: primary`,
			want: "providers cannot be empty",
		},
		{
			name: "no default",
			yaml: "providers:\n  primary:\n    type: noop\n",
			want: "default provider must be set",
		},
		{
			name: "unknown default",
			yaml: "default: other\nproviders:\n  primary:\n    type: noop\n",
			want: "not defined",
		},
		{
			name: "missing type",
			yaml: "default: primary\nproviders:\n  primary:\n    base_url: https://x\n",
			want: "must specify type",
		},
		{
			name: "unsupported type",
			yaml: "default: primary\nproviders:\n  primary:\n    type: imaginary\n",
			want: "unsupported type",
		},
		{
			name: "bad timeout",
			yaml: "default: primary\nproviders:\n  primary:\n    type: noop\n    timeout: soon\n",
			want: "invalid timeout",
		},
		{
			name: "negative attempts",
			yaml: "default: primary\nproviders:\n  primary:\n    type: noop\n    max_attempts: -1\n",
			want: "max_attempts cannot be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
