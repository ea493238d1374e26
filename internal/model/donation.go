package model

import "time"

// Donation is a recorded gift. Payment processing happens outside this
// system; only the record is kept here.
type Donation struct {
	ID          int       `json:"id"`
	UserID      *int      `json:"user_id,omitempty"`
	DonorName   string    `json:"donor_name"`
	DonorEmail  string    `json:"donor_email"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
