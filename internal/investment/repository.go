package investment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Investment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ArtistID      uuid.UUID
	ArtistName    string
	Shares        float64
	PricePerShare float64
	CreatedAt     time.Time
}

type Repository interface {
	createInvestment(ctx context.Context, investment *Investment) error
	findByUserID(ctx context.Context, userID uuid.UUID) ([]Investment, error)
	getInvestmentByID(ctx context.Context, investmentID uuid.UUID) (*Investment, error)
	deleteInvestment(ctx context.Context, investmentID uuid.UUID) error
}

type investmentRepository struct {
	db *sql.DB
}

func NewInvestmentRepository(db *sql.DB) Repository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) createInvestment(ctx context.Context, investment *Investment) error {
	query := `
        INSERT INTO investments (id, user_id, artist_id, shares, price_per_share, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.ExecContext(ctx, query,
		investment.ID,
		investment.UserID,
		investment.ArtistID,
		investment.Shares,
		investment.PricePerShare,
		investment.CreatedAt,
	)
	return err
}

func (r *investmentRepository) findByUserID(ctx context.Context, userID uuid.UUID) ([]Investment, error) {
	query := `
        SELECT i.id, i.user_id, i.artist_id, a.name, i.shares, i.price_per_share, i.created_at
        FROM investments i
        JOIN artists a ON a.id = i.artist_id
        WHERE i.user_id = $1
        ORDER BY i.created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []Investment
	for rows.Next() {
		var inv Investment
		if err := rows.Scan(
			&inv.ID,
			&inv.UserID,
			&inv.ArtistID,
			&inv.ArtistName,
			&inv.Shares,
			&inv.PricePerShare,
			&inv.CreatedAt); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (r *investmentRepository) getInvestmentByID(ctx context.Context, investmentID uuid.UUID) (*Investment, error) {
	query := `
        SELECT i.id, i.user_id, i.artist_id, a.name, i.shares, i.price_per_share, i.created_at
        FROM investments i
        JOIN artists a ON a.id = i.artist_id
        WHERE i.id = $1
    `
	inv := &Investment{}
	err := r.db.QueryRowContext(ctx, query, investmentID).Scan(
		&inv.ID,
		&inv.UserID,
		&inv.ArtistID,
		&inv.ArtistName,
		&inv.Shares,
		&inv.PricePerShare,
		&inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *investmentRepository) deleteInvestment(ctx context.Context, investmentID uuid.UUID) error {
	query := `DELETE FROM investments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, investmentID)
	return err
}
