package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubStreamingProvider struct {
	metrics *StreamingMetrics
	err     error
}

func (s *stubStreamingProvider) FetchArtistMetrics(_ context.Context, _ string) (*StreamingMetrics, error) {
	return s.metrics, s.err
}

type stubVideoProvider struct {
	views int64
	err   error
}

func (s *stubVideoProvider) FetchTotalViews(_ context.Context, _ string) (int64, error) {
	return s.views, s.err
}

func TestFetch_BothProvidersHealthy(t *testing.T) {
	fetcher := NewArtistSignalFetcher(
		&stubStreamingProvider{metrics: &StreamingMetrics{Name: "Nova Waves", Popularity: 72, MonthlyListeners: 1_530_000}},
		&stubVideoProvider{views: 1_250_050},
		time.Second,
	)

	signal := fetcher.Fetch(context.Background(), "Nova Waves")

	assert.Equal(t, 72, signal.Popularity)
	assert.Equal(t, int64(1_530_000), signal.MonthlyListeners)
	assert.Equal(t, int64(1_250_050), signal.TotalViews)
	assert.False(t, signal.ViewsUnavailable)
}

func TestFetch_StreamingFailureFallsBackToNeutral(t *testing.T) {
	fetcher := NewArtistSignalFetcher(
		&stubStreamingProvider{err: errors.New("connection refused")},
		&stubVideoProvider{views: 500},
		time.Second,
	)

	signal := fetcher.Fetch(context.Background(), "Nova Waves")

	assert.Equal(t, 0, signal.Popularity)
	assert.Equal(t, int64(0), signal.MonthlyListeners)
	assert.Equal(t, int64(500), signal.TotalViews)
}

func TestFetch_MissingArtistFallsBackToNeutral(t *testing.T) {
	fetcher := NewArtistSignalFetcher(
		&stubStreamingProvider{err: ErrArtistNotFound},
		&stubVideoProvider{views: 0},
		time.Second,
	)

	signal := fetcher.Fetch(context.Background(), "Nobody Knows This Band")

	assert.Equal(t, 0, signal.Popularity)
	assert.Equal(t, int64(0), signal.MonthlyListeners)
}

func TestFetch_QuotaFailureMarksViewsUnavailable(t *testing.T) {
	fetcher := NewArtistSignalFetcher(
		&stubStreamingProvider{metrics: &StreamingMetrics{Popularity: 40, MonthlyListeners: 2000}},
		&stubVideoProvider{err: ErrQuotaExceeded},
		time.Second,
	)

	signal := fetcher.Fetch(context.Background(), "Nova Waves")

	assert.Equal(t, int64(0), signal.TotalViews)
	assert.True(t, signal.ViewsUnavailable, "a quota rejection is not a true zero observation")
	assert.Equal(t, 40, signal.Popularity, "the streaming side is unaffected by a video failure")
}
