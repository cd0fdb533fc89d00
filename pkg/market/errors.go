package market

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited marks an upstream HTTP 429. It is retried with backoff
	// and only surfaces when every attempt was rate limited.
	ErrRateLimited = errors.New("market: rate limited by upstream")

	// ErrInvalidPriceData reports a price response without a numeric
	// quote-currency price for the requested asset. Never retried.
	ErrInvalidPriceData = errors.New("market: invalid price data")

	// ErrInvalidMarketData reports a coin detail response without a
	// market-data section. Never retried.
	ErrInvalidMarketData = errors.New("market: invalid market data")

	// ErrInvalidHistoryData reports an absent or malformed price series.
	// Never retried.
	ErrInvalidHistoryData = errors.New("market: invalid history data")
)

// StatusError reports a non-2xx upstream HTTP response after the retry
// budget is exhausted.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("market: upstream status %d %s", e.Code, e.Status)
}
