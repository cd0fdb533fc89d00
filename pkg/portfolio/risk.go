package portfolio

import (
	"fmt"
	"math"

	"coinfolio-api/pkg/market"
)

// FactorTone labels how a factor reads for the holder.
type FactorTone string

const (
	TonePositive FactorTone = "positive"
	ToneNegative FactorTone = "negative"
	ToneNeutral  FactorTone = "neutral"
)

// Factor is one contribution to a risk assessment.
type Factor struct {
	Name        string
	Delta       int
	Tone        FactorTone
	Description string
}

// Assessment is a heuristic stability score in [0,100]; higher reads safer.
// Derived purely from one market snapshot, no persisted state.
type Assessment struct {
	Score   int
	Factors []Factor
}

const (
	riskBaseScore = 70

	bigMovePct    = 10.0 // 24h swing beyond this is penalized
	largeCapFloor = 1e9  // quote-currency units
	volumeToCap   = 0.1  // healthy 24h volume relative to cap
)

// ScoreRisk derives a risk assessment from a market snapshot. NaN fields
// (absent upstream data) fall through every comparison, so the affected
// factor lands on its else branch the same way absent data does upstream.
func ScoreRisk(snap *market.Snapshot) Assessment {
	score := riskBaseScore
	factors := make([]Factor, 0, 4)

	delta := 0
	if math.Abs(snap.Change24h) > bigMovePct {
		delta = -10
	}
	tone := ToneNegative
	if snap.Change24h > 0 {
		tone = TonePositive
	}
	factors = append(factors, Factor{
		Name:        "24h change",
		Delta:       delta,
		Tone:        tone,
		Description: fmt.Sprintf("24h price change of %.2f%%", snap.Change24h),
	})
	score += delta

	delta = -5
	tone = ToneNegative
	if snap.Change7d > 0 {
		delta = 5
		tone = TonePositive
	}
	factors = append(factors, Factor{
		Name:        "7d trend",
		Delta:       delta,
		Tone:        tone,
		Description: fmt.Sprintf("7d price trend of %.2f%%", snap.Change7d),
	})
	score += delta

	delta = 0
	tone = ToneNeutral
	if snap.MarketCap > largeCapFloor {
		delta = 10
		tone = TonePositive
	}
	factors = append(factors, Factor{
		Name:        "market cap",
		Delta:       delta,
		Tone:        tone,
		Description: fmt.Sprintf("market capitalization of $%.2f", snap.MarketCap),
	})
	score += delta

	delta = 0
	tone = ToneNeutral
	if snap.Volume24h > snap.MarketCap*volumeToCap {
		delta = 5
		tone = TonePositive
	}
	factors = append(factors, Factor{
		Name:        "volume",
		Delta:       delta,
		Tone:        tone,
		Description: fmt.Sprintf("24h volume at %.2f%% of market cap", snap.Volume24h/snap.MarketCap*100),
	})
	score += delta

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Assessment{Score: score, Factors: factors}
}
