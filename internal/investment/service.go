package investment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wavdex/backend/internal/artist"
)

var (
	ErrInvestmentNotFound = errors.New("investment doesn't exist")
	ErrInvalidShares      = errors.New("shares must be greater than zero")
	ErrUnauthorizedAccess = errors.New("investment doesn't belong to this user")
)

type ArtistService interface {
	GetArtist(ctx context.Context, artistID uuid.UUID) (*artist.Artist, error)
}

type Service interface {
	Buy(ctx context.Context, userID, artistID uuid.UUID, shares float64) (*Investment, error)
	Sell(ctx context.Context, userID, investmentID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Investment, error)
}

type service struct {
	repo          Repository
	artistService ArtistService
}

func NewInvestmentService(repo Repository, artistService ArtistService) Service {
	return &service{
		repo:          repo,
		artistService: artistService,
	}
}

// Buy records a purchase of fictional shares at the artist's current stock
// price, the one the valuation engine last wrote.
func (s *service) Buy(ctx context.Context, userID, artistID uuid.UUID, shares float64) (*Investment, error) {
	if shares <= 0 {
		return nil, ErrInvalidShares
	}

	tracked, err := s.artistService.GetArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, artist.ErrArtistNotFound) {
			return nil, artist.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}

	investment := &Investment{
		ID:            uuid.New(),
		UserID:        userID,
		ArtistID:      artistID,
		ArtistName:    tracked.Name,
		Shares:        shares,
		PricePerShare: tracked.StockPrice,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.createInvestment(ctx, investment); err != nil {
		return nil, err
	}
	return investment, nil
}

// Sell removes the position. Ownership is checked so one user cannot close
// another user's investment.
func (s *service) Sell(ctx context.Context, userID, investmentID uuid.UUID) error {
	investment, err := s.repo.getInvestmentByID(ctx, investmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvestmentNotFound
		}
		return err
	}

	if investment.UserID != userID {
		return ErrUnauthorizedAccess
	}

	return s.repo.deleteInvestment(ctx, investmentID)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]Investment, error) {
	return s.repo.findByUserID(ctx, userID)
}
