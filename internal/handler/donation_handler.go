package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebiblebus/biblebus-backend/internal/middleware"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/response"
	"github.com/thebiblebus/biblebus-backend/internal/service"
	"github.com/thebiblebus/biblebus-backend/internal/validator"
)

// DonationHandler handles donation records.
type DonationHandler struct {
	donationService *service.DonationService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateDonationRequest is the payload for recording a gift.
type CreateDonationRequest struct {
	DonorName   string `json:"donor_name" binding:"required,min=2,max=120"`
	DonorEmail  string `json:"donor_email" binding:"required,email"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
	Note        string `json:"note" binding:"omitempty,max=500"`
}

// CreateDonation godoc
// POST /api/v1/public/donations
// Records a donation. Signed-in donors are linked to their account.
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	donation := &model.Donation{
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Note:        req.Note,
	}
	if claims := middleware.GetClaims(c); claims != nil {
		donation.UserID = &claims.UserID
	}

	if err := h.donationService.Record(c.Request.Context(), donation); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"donation": donation})
}

// ListDonations godoc
// GET /api/v1/admin/donations
func (h *DonationHandler) ListDonations(c *gin.Context) {
	donations, err := h.donationService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totals, err := h.donationService.Totals(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"donations": donations,
		"totals":    totals,
	})
}
