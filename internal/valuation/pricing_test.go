package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wavdex/backend/internal/marketdata"
)

func TestChangeRatio(t *testing.T) {
	assert.Equal(t, 0.0, changeRatio(0, 0), "no prior and no current data must read as no change")
	assert.Equal(t, 0.0, changeRatio(5_000_000, 0), "first real observation has no baseline to compare against")
	assert.InDelta(t, 0.25, changeRatio(4, 3), 1e-9, "(4-3)/(3+1)")
	assert.InDelta(t, -0.5, changeRatio(2, 5), 1e-9, "(2-5)/(5+1)")
}

func TestBasePriceFloor(t *testing.T) {
	assert.Equal(t, 5.0, BasePriceFloor(0, 0, 0), "floor never drops below 5")
	assert.Equal(t, 5.0, BasePriceFloor(1, 0, 0))

	// 80*3 + sqrt(1_000_000)/200 + 50_000_000/10_000_000 = 240 + 5 + 5
	assert.InDelta(t, 250.0, BasePriceFloor(80, 1_000_000, 50_000_000), 1e-9)
}

func TestEstimateViews(t *testing.T) {
	assert.Equal(t, int64(1_020_000), EstimateViews(1_000_000))
	assert.Equal(t, int64(51), EstimateViews(50))
}

func TestReprice_NoSignalChangeIsIdempotent(t *testing.T) {
	sig := marketdata.ArtistSignal{Popularity: 60, MonthlyListeners: 5000, TotalViews: 2_000_000}

	price := Reprice(120.50, sig, 5000, 2_000_000)
	assert.InDelta(t, 120.50, price, 1e-9, "unchanged signals must leave the price unchanged")
}

func TestReprice_GrowthCappedAtThirtyPercent(t *testing.T) {
	// Listener ratio (299-99)/(99+1) = 2.0 -> change factor 1.0 -> provisional 200.
	sig := marketdata.ArtistSignal{Popularity: 50, MonthlyListeners: 299, TotalViews: 0}

	price := Reprice(100, sig, 99, 0)
	assert.InDelta(t, 130.0, price, 1e-9, "no artist may gain more than 30% in one pass")
}

func TestReprice_HighValueDamping(t *testing.T) {
	// Listener ratio (3-2)/(2+1) = 1/3 -> change factor 1/6 -> provisional 70000.
	sig := marketdata.ArtistSignal{Popularity: 90, MonthlyListeners: 3, TotalViews: 0}

	price := Reprice(60_000, sig, 2, 0)
	// Only 50% of the delta applies above 50000: 60000 + 10000*0.5.
	assert.InDelta(t, 65_000, price, 1e-6)
}

func TestReprice_MidValueDamping(t *testing.T) {
	// Listener ratio (14-9)/(9+1) = 0.5 -> change factor 0.25 -> provisional 37500.
	sig := marketdata.ArtistSignal{Popularity: 90, MonthlyListeners: 14, TotalViews: 0}

	price := Reprice(30_000, sig, 9, 0)
	// 70% of the delta applies between 20000 and 50000: 30000 + 7500*0.7.
	assert.InDelta(t, 35_250, price, 1e-6)
}

func TestReprice_UnknownArtistResetStillCapped(t *testing.T) {
	// Popularity 4 with 10000 listeners: floor = 12 + sqrt(10000)/200 = 12.5.
	sig := marketdata.ArtistSignal{Popularity: 4, MonthlyListeners: 10_000, TotalViews: 0}

	price := Reprice(3, sig, 10_000, 0)
	// Provisional 3 < 5 resets to the floor 12.5, but the growth cap still
	// applies relative to the prior price: min(12.5, 3*1.3) = 3.9.
	assert.InDelta(t, 3.9, price, 1e-9)
}

func TestReprice_NeverBelowMinimum(t *testing.T) {
	sig := marketdata.ArtistSignal{}

	price := Reprice(0.01, sig, 0, 0)
	// Reset to floor 5, then capped at 0.01*1.3.
	assert.InDelta(t, 0.013, price, 1e-9)
	assert.Equal(t, 0.01, RoundPrice(price))
	assert.GreaterOrEqual(t, RoundPrice(price), 0.01)
}

func TestReprice_CollapsedSignalHalvesPrice(t *testing.T) {
	// Streaming outage reads as listeners dropping to zero against a real
	// baseline: ratio (0-1000)/1001, weighted by 0.5.
	sig := marketdata.ArtistSignal{Popularity: 0, MonthlyListeners: 0, TotalViews: 0}

	price := Reprice(100, sig, 1000, 0)
	expected := 100 * (1 + 0.5*(-1000.0/1001.0))
	assert.InDelta(t, expected, price, 1e-9)
}

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, 10.57, RoundPrice(10.567))
	assert.Equal(t, 10.56, RoundPrice(10.564))
	assert.Equal(t, 0.01, RoundPrice(0.013))
}
