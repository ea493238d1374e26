package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thebiblebus/biblebus-backend/internal/model"
)

// DonationRepository handles donation record data access.
type DonationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new DonationRepository.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

// Create inserts a new donation record.
func (r *DonationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO donations (user_id, donor_name, donor_email, amount_cents, currency, note)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		d.UserID, d.DonorName, d.DonorEmail, d.AmountCents, d.Currency, d.Note,
	).Scan(&d.ID, &d.CreatedAt)
}

// List retrieves all donations, newest first.
func (r *DonationRepository) List(ctx context.Context) ([]model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, donor_name, donor_email, amount_cents, currency, note, created_at
		 FROM donations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []model.Donation
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(&d.ID, &d.UserID, &d.DonorName, &d.DonorEmail,
			&d.AmountCents, &d.Currency, &d.Note, &d.CreatedAt); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// TotalCents sums all recorded donations by currency.
func (r *DonationRepository) TotalCents(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT currency, COALESCE(SUM(amount_cents), 0) FROM donations GROUP BY currency`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var currency string
		var total int64
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, err
		}
		totals[currency] = total
	}
	return totals, rows.Err()
}
