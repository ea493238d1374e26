package service

import (
	"context"
	"strings"

	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/repository"
)

// DonationService handles donation record keeping.
type DonationService struct {
	donationRepo *repository.DonationRepository
}

// NewDonationService creates a new DonationService.
func NewDonationService(donationRepo *repository.DonationRepository) *DonationService {
	return &DonationService{donationRepo: donationRepo}
}

// Record stores a donation. Currency defaults to USD.
func (s *DonationService) Record(ctx context.Context, d *model.Donation) error {
	if strings.TrimSpace(d.Currency) == "" {
		d.Currency = "USD"
	}
	d.Currency = strings.ToUpper(d.Currency)
	return s.donationRepo.Create(ctx, d)
}

// List retrieves all donation records.
func (s *DonationService) List(ctx context.Context) ([]model.Donation, error) {
	return s.donationRepo.List(ctx)
}

// Totals sums recorded donations per currency.
func (s *DonationService) Totals(ctx context.Context) (map[string]int64, error) {
	return s.donationRepo.TotalCents(ctx)
}
