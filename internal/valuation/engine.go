package valuation

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/wavdex/backend/internal/marketdata"
)

// TrackedArtist is the slice of artist state the engine reads and rewrites
// on every pass.
type TrackedArtist struct {
	ID                 uuid.UUID
	Name               string
	StockPrice         float64
	LastMonthListeners int64
	LastTotalViews     int64
}

type ArtistStore interface {
	ListTrackedArtists(ctx context.Context) ([]TrackedArtist, error)
	UpdateValuation(ctx context.Context, artistID uuid.UUID, stockPrice float64, lastMonthListeners, lastTotalViews int64) error
}

type SignalFetcher interface {
	Fetch(ctx context.Context, name string) marketdata.ArtistSignal
}

// Engine recomputes the stock price of every tracked artist from fresh
// popularity signals. It runs on a timer, unauthenticated, against the full
// artist set.
type Engine struct {
	store   ArtistStore
	fetcher SignalFetcher

	mu sync.Mutex
}

func NewEngine(store ArtistStore, fetcher SignalFetcher) *Engine {
	return &Engine{
		store:   store,
		fetcher: fetcher,
	}
}

// RunPass executes one full valuation pass. A failure on one artist is
// logged and never stops the remaining artists. Overlapping invocations are
// skipped: at most one pass runs at a time.
func (e *Engine) RunPass(ctx context.Context) {
	if !e.mu.TryLock() {
		log.Println("Valuation pass already in progress, skipping trigger")
		return
	}
	defer e.mu.Unlock()

	log.Println("Running stock price update...")

	artists, err := e.store.ListTrackedArtists(ctx)
	if err != nil {
		log.Printf("Error listing artists, aborting valuation pass: %v", err)
		return
	}

	updated, failed := 0, 0
	for _, artist := range artists {
		if err := e.updateArtist(ctx, artist); err != nil {
			log.Printf("Error updating stock price for %s: %v", artist.Name, err)
			failed++
			continue
		}
		updated++
	}

	log.Printf("Stock price update completed: %d updated, %d failed", updated, failed)
}

// updateArtist runs the fetch -> compute -> persist pipeline for a single
// artist.
func (e *Engine) updateArtist(ctx context.Context, artist TrackedArtist) error {
	log.Printf("Fetching data for %s...", artist.Name)

	signal := e.fetcher.Fetch(ctx, artist.Name)

	// Never treat a failed or empty video reading as zero growth when past
	// data exists: assume 2% growth over the last known values instead.
	if (signal.ViewsUnavailable || signal.TotalViews == 0) && artist.LastTotalViews > 0 {
		signal.TotalViews = EstimateViews(artist.LastTotalViews)
		log.Printf("No usable view count for %s, estimating %d from last known values", artist.Name, signal.TotalViews)
	}

	newPrice := RoundPrice(Reprice(artist.StockPrice, signal, artist.LastMonthListeners, artist.LastTotalViews))

	err := e.store.UpdateValuation(ctx, artist.ID, newPrice, signal.MonthlyListeners, signal.TotalViews)
	if err != nil {
		return fmt.Errorf("persist valuation: %w", err)
	}

	log.Printf("Final saved stock price for %s: $%.2f", artist.Name, newPrice)
	return nil
}
