package marketdata

import (
	"context"
	"errors"
	"log"
	"time"
)

var (
	ErrArtistNotFound  = errors.New("artist not found in streaming catalog")
	ErrChannelNotFound = errors.New("no channel found for artist")
	ErrQuotaExceeded   = errors.New("video provider quota exceeded or request rejected")
)

// ArtistSignal is the normalized popularity snapshot for one artist, for one
// valuation pass.
type ArtistSignal struct {
	Popularity       int
	MonthlyListeners int64
	TotalViews       int64
	// ViewsUnavailable marks TotalViews as a provider failure rather than a
	// true zero observation. The valuation engine applies its estimate policy
	// instead of treating it as zero growth.
	ViewsUnavailable bool
}

// StreamingMetrics is what the streaming provider reports for one artist.
type StreamingMetrics struct {
	Name             string
	Popularity       int
	MonthlyListeners int64
}

type StreamingProvider interface {
	FetchArtistMetrics(ctx context.Context, name string) (*StreamingMetrics, error)
}

type VideoProvider interface {
	FetchTotalViews(ctx context.Context, name string) (int64, error)
}

// ArtistSignalFetcher queries both providers for one artist and folds the
// results into a single ArtistSignal. Provider failures are absorbed into
// neutral defaults and logged, they are never surfaced to the caller.
type ArtistSignalFetcher struct {
	streaming StreamingProvider
	video     VideoProvider
	timeout   time.Duration
}

func NewArtistSignalFetcher(streaming StreamingProvider, video VideoProvider, timeout time.Duration) *ArtistSignalFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ArtistSignalFetcher{
		streaming: streaming,
		video:     video,
		timeout:   timeout,
	}
}

// Fetch returns the current popularity signal for the named artist. Each
// provider call gets its own timeout so one hanging call cannot stall a
// whole valuation pass.
func (f *ArtistSignalFetcher) Fetch(ctx context.Context, name string) ArtistSignal {
	var signal ArtistSignal

	streamCtx, cancel := context.WithTimeout(ctx, f.timeout)
	metrics, err := f.streaming.FetchArtistMetrics(streamCtx, name)
	cancel()
	if err != nil {
		log.Printf("No streaming data for %q, using neutral values: %v", name, err)
	} else {
		signal.Popularity = metrics.Popularity
		signal.MonthlyListeners = metrics.MonthlyListeners
	}

	videoCtx, cancel := context.WithTimeout(ctx, f.timeout)
	views, err := f.video.FetchTotalViews(videoCtx, name)
	cancel()
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			log.Printf("Video provider limit reached for %q, caller should fall back to last known values", name)
		} else {
			log.Printf("No video data for %q: %v", name, err)
		}
		signal.ViewsUnavailable = true
	} else {
		signal.TotalViews = views
	}

	return signal
}
