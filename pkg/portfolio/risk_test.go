package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"coinfolio-api/pkg/market"
)

func TestScoreRiskWorkedExample(t *testing.T) {
	snap := &market.Snapshot{
		Change24h: 12,
		Change7d:  -3,
		MarketCap: 2e9,
		Volume24h: 3e8,
	}

	assessment := ScoreRisk(snap)

	// 70 - 10 (24h swing) - 5 (7d down) + 10 (large cap) + 5 (15% volume) = 70
	require.Equal(t, 70, assessment.Score)
	require.Len(t, assessment.Factors, 4)

	deltas := []int{assessment.Factors[0].Delta, assessment.Factors[1].Delta,
		assessment.Factors[2].Delta, assessment.Factors[3].Delta}
	require.Equal(t, []int{-10, -5, 10, 5}, deltas)

	require.Equal(t, TonePositive, assessment.Factors[0].Tone, "24h change is positive")
	require.Equal(t, ToneNegative, assessment.Factors[1].Tone)
	require.Equal(t, TonePositive, assessment.Factors[2].Tone)
	require.Equal(t, TonePositive, assessment.Factors[3].Tone)

	require.Contains(t, assessment.Factors[0].Description, "12.00%")
	require.Contains(t, assessment.Factors[1].Description, "-3.00%")
	require.Contains(t, assessment.Factors[3].Description, "15.00%")
}

func TestScoreRiskTable(t *testing.T) {
	tests := []struct {
		name string
		snap market.Snapshot
		want int
	}{
		{
			name: "calm large cap",
			snap: market.Snapshot{Change24h: 1, Change7d: 2, MarketCap: 5e9, Volume24h: 1e8},
			want: 85, // 70 + 0 + 5 + 10 + 0
		},
		{
			name: "volatile small cap",
			snap: market.Snapshot{Change24h: -15, Change7d: -20, MarketCap: 1e6, Volume24h: 1e3},
			want: 55, // 70 - 10 - 5 + 0 + 0
		},
		{
			name: "everything favorable",
			snap: market.Snapshot{Change24h: 5, Change7d: 8, MarketCap: 3e9, Volume24h: 1e9},
			want: 90, // 70 + 0 + 5 + 10 + 5
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ScoreRisk(&tt.snap).Score)
		})
	}
}

func TestScoreRiskClampedToRange(t *testing.T) {
	extremes := []market.Snapshot{
		{Change24h: 1000, Change7d: 1000, MarketCap: 1e12, Volume24h: 1e12},
		{Change24h: -1000, Change7d: -1000, MarketCap: 0, Volume24h: 0},
		{Change24h: math.Inf(1), Change7d: math.Inf(-1)},
		{Change24h: math.NaN(), Change7d: math.NaN(), MarketCap: math.NaN(), Volume24h: math.NaN()},
	}
	for _, snap := range extremes {
		score := ScoreRisk(&snap).Score
		require.GreaterOrEqual(t, score, 0)
		require.LessOrEqual(t, score, 100)
	}
}

func TestScoreRiskNaNFieldsUseElseBranches(t *testing.T) {
	snap := &market.Snapshot{
		Change24h: math.NaN(),
		Change7d:  math.NaN(),
		MarketCap: math.NaN(),
		Volume24h: math.NaN(),
	}
	assessment := ScoreRisk(snap)

	// NaN comparisons are all false: no 24h penalty, 7d counts as down,
	// cap and volume stay neutral.
	require.Equal(t, 65, assessment.Score)
	require.Equal(t, ToneNegative, assessment.Factors[0].Tone)
	require.Equal(t, ToneNegative, assessment.Factors[1].Tone)
	require.Equal(t, ToneNeutral, assessment.Factors[2].Tone)
	require.Equal(t, ToneNeutral, assessment.Factors[3].Tone)
}
