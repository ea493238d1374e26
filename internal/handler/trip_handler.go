package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/response"
	"github.com/thebiblebus/biblebus-backend/internal/service"
	"github.com/thebiblebus/biblebus-backend/internal/validator"
)

// TripHandler handles trip logistics routes.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

func tripView(t *model.Trip) gin.H {
	return gin.H{
		"id":         t.ID,
		"group_id":   t.GroupID,
		"title":      t.Title,
		"location":   t.Location,
		"departs_on": service.FormatDate(t.DepartsOn),
		"returns_on": service.FormatDate(t.ReturnsOn),
		"capacity":   t.Capacity,
		"notes":      t.Notes,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

// ListTrips godoc
// GET /api/v1/member/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.tripService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	views := make([]gin.H, 0, len(trips))
	for i := range trips {
		views = append(views, tripView(&trips[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"trips": views})
}

// TripRequest is the payload for creating or updating a trip.
type TripRequest struct {
	GroupID   *int   `json:"group_id" binding:"omitempty,min=1"`
	Title     string `json:"title" binding:"required,min=2,max=200"`
	Location  string `json:"location" binding:"required,min=2,max=200"`
	DepartsOn string `json:"departs_on" binding:"required"`
	ReturnsOn string `json:"returns_on" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
	Notes     string `json:"notes" binding:"omitempty,max=2000"`
}

func (r *TripRequest) toModel() (*model.Trip, error) {
	departs, err := service.ParseDate(r.DepartsOn)
	if err != nil {
		return nil, err
	}
	returns, err := service.ParseDate(r.ReturnsOn)
	if err != nil {
		return nil, err
	}
	return &model.Trip{
		GroupID:   r.GroupID,
		Title:     r.Title,
		Location:  r.Location,
		DepartsOn: departs,
		ReturnsOn: returns,
		Capacity:  r.Capacity,
		Notes:     r.Notes,
	}, nil
}

// CreateTrip godoc
// POST /api/v1/admin/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req TripRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	trip, err := req.toModel()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrMalformedDate)
		return
	}

	if err := h.tripService.Create(c.Request.Context(), trip); err != nil {
		if errors.Is(err, service.ErrTripDates) {
			response.Fail(c, http.StatusBadRequest, response.ErrTripDates)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"trip": tripView(trip)})
}

// UpdateTrip godoc
// PUT /api/v1/admin/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req TripRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	trip, err := req.toModel()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrMalformedDate)
		return
	}
	trip.ID = id

	existing, err := h.tripService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if existing == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.tripService.Update(c.Request.Context(), trip); err != nil {
		if errors.Is(err, service.ErrTripDates) {
			response.Fail(c, http.StatusBadRequest, response.ErrTripDates)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, _ := h.tripService.GetByID(c.Request.Context(), id)
	response.Success(c, http.StatusOK, gin.H{"trip": tripView(updated)})
}

// DeleteTrip godoc
// DELETE /api/v1/admin/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "trip deleted successfully"})
}
