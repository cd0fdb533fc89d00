// Package news synthesizes digest items from market-data deltas. It is not
// a news feed: every item is derived from one snapshot and produced fresh on
// each call, never stored.
package news

import (
	"fmt"
	"math"
	"time"

	"coinfolio-api/pkg/market"
)

const sourceName = "Market Digest"

// Item is one synthesized headline derived from a market snapshot.
type Item struct {
	Headline    string
	Description string
	PublishedAt time.Time
	Source      string
	URL         string
}

// Digest emits up to four items for a snapshot, in this order: 24h price
// move, 7d price move, 24h trading volume, market capitalization. An item is
// emitted only when its underlying field is a well-formed number. Direction
// words follow the sign of the corresponding percentage; volume and cap
// items are always neutral in tone. All items share the snapshot's
// last-updated timestamp and the asset's primary homepage link.
func Digest(snap *market.Snapshot) []Item {
	if snap == nil {
		return nil
	}
	name := snap.DisplayName()
	link := snap.HomepageURL()
	items := make([]Item, 0, 4)

	if market.IsNumber(snap.Change24h) {
		direction := "gains"
		if snap.Change24h < 0 {
			direction = "drops"
		}
		items = append(items, Item{
			Headline: fmt.Sprintf("%s %s %.2f%% in 24 hours", name, direction, math.Abs(snap.Change24h)),
			Description: fmt.Sprintf("%s moved %.2f%% over the last 24 hours and currently trades at %s.",
				name, snap.Change24h, formatUSD(snap.CurrentPrice)),
			PublishedAt: snap.LastUpdated,
			Source:      sourceName,
			URL:         link,
		})
	}

	if market.IsNumber(snap.Change7d) {
		direction := "rises"
		if snap.Change7d < 0 {
			direction = "falls"
		}
		items = append(items, Item{
			Headline: fmt.Sprintf("%s %s %.2f%% over the week", name, direction, math.Abs(snap.Change7d)),
			Description: fmt.Sprintf("%s is %s %.2f%% compared to seven days ago.",
				name, pastTense(direction), math.Abs(snap.Change7d)),
			PublishedAt: snap.LastUpdated,
			Source:      sourceName,
			URL:         link,
		})
	}

	if market.IsNumber(snap.Volume24h) {
		items = append(items, Item{
			Headline: fmt.Sprintf("%s 24h trading volume reaches %s", name, formatUSD(snap.Volume24h)),
			Description: fmt.Sprintf("Trading volume for %s over the last 24 hours totals %s.",
				name, formatUSD(snap.Volume24h)),
			PublishedAt: snap.LastUpdated,
			Source:      sourceName,
			URL:         link,
		})
	}

	if market.IsNumber(snap.MarketCap) {
		items = append(items, Item{
			Headline: fmt.Sprintf("%s market capitalization stands at %s", name, formatUSD(snap.MarketCap)),
			Description: fmt.Sprintf("%s currently holds a market capitalization of %s.",
				name, formatUSD(snap.MarketCap)),
			PublishedAt: snap.LastUpdated,
			Source:      sourceName,
			URL:         link,
		})
	}

	return items
}

func formatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func pastTense(direction string) string {
	if direction == "rises" {
		return "up"
	}
	return "down"
}
