package market

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
)

const defaultQuoteTTL = 30 * time.Second

// Warning records a non-fatal failure while resolving one asset's quote.
// The affected asset is valued at zero; the batch itself still succeeds.
type Warning struct {
	AssetID string
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.AssetID, w.Err)
}

// QuoteService resolves spot prices through a provider behind a short-lived
// read-through cache, so repeated lookups inside the refresh window do not
// re-hit the upstream. Cache entries expire after the TTL; expiry only
// triggers a re-fetch, it never blocks a lookup.
type QuoteService struct {
	source PriceSource
	cache  *collection.Cache
}

// NewQuoteService builds a quote service. ttl <= 0 selects the default
// refresh window of 30s.
func NewQuoteService(source PriceSource, ttl time.Duration) (*QuoteService, error) {
	if ttl <= 0 {
		ttl = defaultQuoteTTL
	}
	cache, err := collection.NewCache(ttl, collection.WithName("quotes"))
	if err != nil {
		return nil, fmt.Errorf("market: create quote cache: %w", err)
	}
	return &QuoteService{source: source, cache: cache}, nil
}

// SpotPrice returns the cached quote for assetID, fetching on miss.
// Concurrent lookups for the same asset share a single upstream call.
func (s *QuoteService) SpotPrice(ctx context.Context, assetID string) (float64, error) {
	val, err := s.cache.Take(assetID, func() (any, error) {
		return s.source.SpotPrice(ctx, assetID)
	})
	if err != nil {
		return 0, err
	}
	return val.(float64), nil
}

// ResolvePrices fetches the spot price for every distinct asset
// concurrently and joins all fetches before returning. A failed asset is
// omitted from the result map and reported as a warning; one slow or failing
// fetch never blocks or fails the others.
func (s *QuoteService) ResolvePrices(ctx context.Context, assetIDs []string) (map[string]float64, []Warning) {
	distinct := distinctIDs(assetIDs)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		prices   = make(map[string]float64, len(distinct))
		warnings []Warning
	)
	for _, id := range distinct {
		wg.Add(1)
		go func(assetID string) {
			defer wg.Done()
			price, err := s.SpotPrice(ctx, assetID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logx.WithContext(ctx).Errorf("market: resolve price asset=%s err=%v", assetID, err)
				warnings = append(warnings, Warning{AssetID: assetID, Err: err})
				return
			}
			prices[assetID] = price
		}(id)
	}
	wg.Wait()

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].AssetID < warnings[j].AssetID
	})
	return prices, warnings
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
