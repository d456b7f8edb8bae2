package artist

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Artist struct {
	ID                 uuid.UUID
	Name               string
	Genre              string
	StockPrice         float64
	LastMonthListeners int64
	LastTotalViews     int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Repository interface {
	getAllArtists(ctx context.Context) ([]Artist, error)
	getArtistByID(ctx context.Context, artistID uuid.UUID) (*Artist, error)
	createArtist(ctx context.Context, artist *Artist) error
	updateValuation(ctx context.Context, artistID uuid.UUID, stockPrice float64, lastMonthListeners, lastTotalViews int64) error
	doesArtistExist(ctx context.Context, name string) (bool, error)
}

type artistRepository struct {
	db *sql.DB
}

func NewArtistRepository(db *sql.DB) Repository {
	return &artistRepository{db: db}
}

func (r *artistRepository) getAllArtists(ctx context.Context) ([]Artist, error) {
	query := `SELECT id, name, genre, stock_price, last_month_listeners, last_total_views, created_at, updated_at
              FROM artists ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Genre,
			&a.StockPrice,
			&a.LastMonthListeners,
			&a.LastTotalViews,
			&a.CreatedAt,
			&a.UpdatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (r *artistRepository) getArtistByID(ctx context.Context, artistID uuid.UUID) (*Artist, error) {
	query := `SELECT id, name, genre, stock_price, last_month_listeners, last_total_views, created_at, updated_at
              FROM artists WHERE id = $1`
	a := &Artist{}
	err := r.db.QueryRowContext(ctx, query, artistID).Scan(
		&a.ID,
		&a.Name,
		&a.Genre,
		&a.StockPrice,
		&a.LastMonthListeners,
		&a.LastTotalViews,
		&a.CreatedAt,
		&a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *artistRepository) createArtist(ctx context.Context, artist *Artist) error {
	query := `
        INSERT INTO artists (id, name, genre, stock_price, last_month_listeners, last_total_views, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.ExecContext(ctx, query,
		artist.ID,
		artist.Name,
		artist.Genre,
		artist.StockPrice,
		artist.LastMonthListeners,
		artist.LastTotalViews,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	return err
}

func (r *artistRepository) updateValuation(ctx context.Context, artistID uuid.UUID, stockPrice float64, lastMonthListeners, lastTotalViews int64) error {
	query := `
        UPDATE artists
        SET
            stock_price = $1,
            last_month_listeners = $2,
            last_total_views = $3,
            updated_at = NOW()
        WHERE id = $4
    `
	_, err := r.db.ExecContext(ctx, query,
		stockPrice,
		lastMonthListeners,
		lastTotalViews,
		artistID,
	)
	return err
}

func (r *artistRepository) doesArtistExist(ctx context.Context, name string) (bool, error) {
	query := `SELECT COUNT(1) FROM artists WHERE LOWER(name) = LOWER($1)`
	var count int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
