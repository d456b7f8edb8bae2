package valuation

import (
	"math"

	"github.com/wavdex/backend/internal/marketdata"
)

// Pricing policy constants. Listener growth is weighted more heavily than
// view growth, and high valuations decelerate so compounding cannot run away.
const (
	listenerWeight = 0.5
	viewWeight     = 0.3

	// Prices computed below this are treated as a collapsed or never-known
	// artist and reset to the signal-derived floor.
	minKnownPrice = 5.0

	heavyDampingThreshold = 50000.0
	heavyDampingFactor    = 0.5
	softDampingThreshold  = 20000.0
	softDampingFactor     = 0.7

	// Max permitted gain in a single pass: +30%.
	maxGrowthFactor = 1.3

	minStockPrice = 0.01

	// Assumed growth when the video provider fails and past data exists.
	fallbackViewGrowth = 1.02
)

// changeRatio compares a current observation against the stored baseline.
// The +1 offset guards the division when the baseline is zero; a zero
// baseline means this is the first real observation, so there is no change
// to measure yet.
func changeRatio(current, last int64) float64 {
	if last == 0 {
		return 0
	}
	ratio := float64(current-last) / float64(last+1)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return ratio
}

// BasePriceFloor derives an absolute price from the raw signal, used both to
// seed newly tracked artists and to reset collapsed ones. Never below 5.
func BasePriceFloor(popularity int, monthlyListeners, totalViews int64) float64 {
	derived := float64(popularity)*3 +
		math.Sqrt(float64(monthlyListeners))/200 +
		float64(totalViews)/10_000_000
	return math.Max(minKnownPrice, derived)
}

// EstimateViews assumes 2% growth over the last known view count for passes
// where the video provider could not be read.
func EstimateViews(lastTotalViews int64) int64 {
	return int64(math.Round(float64(lastTotalViews) * fallbackViewGrowth))
}

// RoundPrice rounds to two decimal places for storage.
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// Reprice computes the next stock price from the prior price, the current
// signal and the stored baselines. sig.TotalViews must already hold the
// post-fallback value. The evaluation order matters: the unknown-artist
// reset happens before damping and the growth cap, so a reset price is
// still capped relative to the prior price in the same pass.
func Reprice(priorPrice float64, sig marketdata.ArtistSignal, lastMonthListeners, lastTotalViews int64) float64 {
	changeFactor := listenerWeight*changeRatio(sig.MonthlyListeners, lastMonthListeners) +
		viewWeight*changeRatio(sig.TotalViews, lastTotalViews)

	newPrice := priorPrice * (1 + changeFactor)

	if newPrice < minKnownPrice {
		newPrice = BasePriceFloor(sig.Popularity, sig.MonthlyListeners, sig.TotalViews)
	}

	// Scaling curve: high stock prices grow (and fall) slower.
	if priorPrice > heavyDampingThreshold {
		newPrice = priorPrice + (newPrice-priorPrice)*heavyDampingFactor
	} else if priorPrice > softDampingThreshold {
		newPrice = priorPrice + (newPrice-priorPrice)*softDampingFactor
	}

	newPrice = math.Min(newPrice, priorPrice*maxGrowthFactor)
	return math.Max(minStockPrice, newPrice)
}
