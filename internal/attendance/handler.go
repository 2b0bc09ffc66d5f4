package attendance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Santa0027/fleetops/pkg/common"
)

// Handler handles HTTP requests for attendance
type Handler struct {
	service *Service
}

// NewHandler creates a new attendance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckIn records a driver's shift start
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.CheckIn(c.Request.Context(), &req)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, result)
}

// CheckOut closes a driver's shift
func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.CheckOut(c.Request.Context(), &req)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, record)
}

// MonthlySummary returns a driver's attendance summary for a month
func (h *Handler) MonthlySummary(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driver_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		common.ErrorResponse(c, http.StatusBadRequest, "month must be 1-12")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid year")
		return
	}

	summary, err := h.service.MonthlySummary(c.Request.Context(), driverID, time.Month(month), year)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, summary)
}
