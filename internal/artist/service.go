package artist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wavdex/backend/internal/marketdata"
	"github.com/wavdex/backend/internal/valuation"
)

var (
	ErrArtistNotFound      = errors.New("artist doesn't exist")
	ErrArtistAlreadyExists = errors.New("artist is already tracked")
	ErrInvalidArtistName   = errors.New("artist name is required")
)

type SignalFetcher interface {
	Fetch(ctx context.Context, name string) marketdata.ArtistSignal
}

type Service interface {
	CreateArtist(ctx context.Context, name, genre string) (*Artist, error)
	ListArtists(ctx context.Context) ([]Artist, error)
	GetArtist(ctx context.Context, artistID uuid.UUID) (*Artist, error)
	ListTrackedArtists(ctx context.Context) ([]valuation.TrackedArtist, error)
	UpdateValuation(ctx context.Context, artistID uuid.UUID, stockPrice float64, lastMonthListeners, lastTotalViews int64) error
}

type service struct {
	repo    Repository
	fetcher SignalFetcher
}

func NewArtistService(repo Repository, fetcher SignalFetcher) Service {
	return &service{
		repo:    repo,
		fetcher: fetcher,
	}
}

// CreateArtist starts tracking a new artist. The initial stock price and the
// listener/view baselines are seeded from a first signal fetch, so the next
// valuation pass has something to compare against.
func (s *service) CreateArtist(ctx context.Context, name, genre string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidArtistName
	}

	exists, err := s.repo.doesArtistExist(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check artist existence: %w", err)
	}
	if exists {
		return nil, ErrArtistAlreadyExists
	}

	signal := s.fetcher.Fetch(ctx, name)

	now := time.Now()
	artist := &Artist{
		ID:                 uuid.New(),
		Name:               name,
		Genre:              genre,
		StockPrice:         valuation.RoundPrice(valuation.BasePriceFloor(signal.Popularity, signal.MonthlyListeners, signal.TotalViews)),
		LastMonthListeners: signal.MonthlyListeners,
		LastTotalViews:     signal.TotalViews,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.createArtist(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *service) ListArtists(ctx context.Context) ([]Artist, error) {
	return s.repo.getAllArtists(ctx)
}

func (s *service) GetArtist(ctx context.Context, artistID uuid.UUID) (*Artist, error) {
	artist, err := s.repo.getArtistByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

// ListTrackedArtists exposes the artist set to the valuation engine.
func (s *service) ListTrackedArtists(ctx context.Context) ([]valuation.TrackedArtist, error) {
	artists, err := s.repo.getAllArtists(ctx)
	if err != nil {
		return nil, err
	}

	tracked := make([]valuation.TrackedArtist, 0, len(artists))
	for _, a := range artists {
		tracked = append(tracked, valuation.TrackedArtist{
			ID:                 a.ID,
			Name:               a.Name,
			StockPrice:         a.StockPrice,
			LastMonthListeners: a.LastMonthListeners,
			LastTotalViews:     a.LastTotalViews,
		})
	}
	return tracked, nil
}

func (s *service) UpdateValuation(ctx context.Context, artistID uuid.UUID, stockPrice float64, lastMonthListeners, lastTotalViews int64) error {
	return s.repo.updateValuation(ctx, artistID, stockPrice, lastMonthListeners, lastTotalViews)
}
