package news

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coinfolio-api/pkg/market"
)

var lastUpdated = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func snapshot() *market.Snapshot {
	return &market.Snapshot{
		AssetID:      "bitcoin",
		Symbol:       "BTC",
		Name:         "Bitcoin",
		CurrentPrice: 60000,
		Change24h:    -12,
		Change7d:     -3,
		Volume24h:    3e8,
		MarketCap:    2e9,
		LastUpdated:  lastUpdated,
		Links:        []string{"https://bitcoin.org"},
	}
}

func TestDigestFullSnapshot(t *testing.T) {
	items := Digest(snapshot())
	require.Len(t, items, 4)

	require.Contains(t, items[0].Headline, "drops 12.00%")
	require.Contains(t, items[1].Headline, "falls 3.00%")
	require.Contains(t, items[2].Headline, "volume")
	require.Contains(t, items[3].Headline, "market capitalization")

	for _, item := range items {
		require.Contains(t, item.Headline, "Bitcoin")
		require.Equal(t, lastUpdated, item.PublishedAt)
		require.Equal(t, "https://bitcoin.org", item.URL)
		require.Equal(t, "Market Digest", item.Source)
		require.NotEmpty(t, item.Description)
	}
}

func TestDigestDirectionWords(t *testing.T) {
	snap := snapshot()
	snap.Change24h = 12
	snap.Change7d = 3

	items := Digest(snap)
	require.Contains(t, items[0].Headline, "gains 12.00%")
	require.Contains(t, items[1].Headline, "rises 3.00%")
}

func TestDigestSkipsAbsentFields(t *testing.T) {
	snap := snapshot()
	snap.Change24h = math.NaN()
	snap.Volume24h = math.NaN()

	items := Digest(snap)
	require.Len(t, items, 2)
	require.Contains(t, items[0].Headline, "falls 3.00%")
	require.Contains(t, items[1].Headline, "market capitalization")
}

func TestDigestEmptySnapshot(t *testing.T) {
	require.Nil(t, Digest(nil))

	snap := &market.Snapshot{
		AssetID:   "mystery",
		Change24h: math.NaN(),
		Change7d:  math.NaN(),
		Volume24h: math.NaN(),
		MarketCap: math.NaN(),
	}
	require.Empty(t, Digest(snap))
}

func TestDigestNameFallsBackToSymbolThenID(t *testing.T) {
	snap := snapshot()
	snap.Name = ""
	items := Digest(snap)
	require.Contains(t, items[0].Headline, "BTC")

	snap.Symbol = ""
	items = Digest(snap)
	require.Contains(t, items[0].Headline, "bitcoin")
}
