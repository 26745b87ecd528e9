package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/irpf-calculator/internal/models"
)

const (
	createRatesTable = `
		CREATE TABLE IF NOT EXISTS exchange_rates (
			rate_date  DATE PRIMARY KEY,
			eur_usd    DOUBLE PRECISION NOT NULL,
			eur_gbp    DOUBLE PRECISION NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL
		)`

	upsertRates = `
		INSERT INTO exchange_rates (rate_date, eur_usd, eur_gbp, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rate_date) DO UPDATE
		SET eur_usd = EXCLUDED.eur_usd, eur_gbp = EXCLUDED.eur_gbp, fetched_at = EXCLUDED.fetched_at`

	selectLatestRates = `
		SELECT rate_date, eur_usd, eur_gbp, fetched_at
		FROM exchange_rates
		ORDER BY rate_date DESC
		LIMIT 1`
)

// Repository persists exchange rate snapshots
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the rates table if it does not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRatesTable); err != nil {
		return fmt.Errorf("failed to create exchange_rates table: %w", err)
	}
	return nil
}

// SaveRates stores a snapshot, replacing any snapshot for the same date
func (r *Repository) SaveRates(ctx context.Context, rates *models.ExchangeRates) error {
	_, err := r.db.ExecContext(ctx, upsertRates, rates.Date, rates.EURUSD, rates.EURGBP, rates.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to save exchange rates: %w", err)
	}
	return nil
}

// LatestRates returns the most recent snapshot, or nil when none is stored
func (r *Repository) LatestRates(ctx context.Context) (*models.ExchangeRates, error) {
	rates := &models.ExchangeRates{}
	err := r.db.QueryRowContext(ctx, selectLatestRates).
		Scan(&rates.Date, &rates.EURUSD, &rates.EURGBP, &rates.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}
	return rates, nil
}
