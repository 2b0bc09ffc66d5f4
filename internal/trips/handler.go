package trips

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Santa0027/fleetops/pkg/common"
)

// Handler handles HTTP requests for trips
type Handler struct {
	service *Service
}

// NewHandler creates a new trips handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateTrip records a new trip
func (h *Handler) CreateTrip(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.service.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, trip)
}

// UpdateTrip rewrites a trip's caller-settable fields
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip ID")
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.service.UpdateTrip(c.Request.Context(), id, &req)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, trip)
}

// GetTrip returns a single trip
func (h *Handler) GetTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip ID")
		return
	}

	trip, err := h.service.GetTrip(c.Request.Context(), id)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, trip)
}

// ListTrips returns a driver's trips, paginated
func (h *Handler) ListTrips(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driver_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.service.ListTrips(c.Request.Context(), driverID, page, pageSize)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, resp)
}

// StartTrip moves a pending trip to in_progress
func (h *Handler) StartTrip(c *gin.Context) {
	h.transition(c, h.service.StartTrip)
}

// CompleteTrip finalizes a trip and its earnings
func (h *Handler) CompleteTrip(c *gin.Context) {
	h.transition(c, h.service.CompleteTrip)
}

// CancelTrip cancels a trip that has not completed
func (h *Handler) CancelTrip(c *gin.Context) {
	h.transition(c, h.service.CancelTrip)
}

// EarningsSummary returns a driver's earnings over a date range
func (h *Handler) EarningsSummary(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driver_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}

	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	summary, err := h.service.EarningsSummary(c.Request.Context(), driverID, from, to.AddDate(0, 0, 1))
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, summary)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*Trip, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip ID")
		return
	}

	trip, err := fn(c.Request.Context(), id)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, trip)
}
