package geofence

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Santa0027/fleetops/pkg/common"
)

// FenceLister loads the active fence set for a driver.
type FenceLister interface {
	GetActiveFencesForDriver(ctx context.Context, driverID uuid.UUID) ([]GeoFence, error)
}

// Handler handles HTTP requests for geofences
type Handler struct {
	repo FenceLister
}

// NewHandler creates a new geofence handler
func NewHandler(repo FenceLister) *Handler {
	return &Handler{repo: repo}
}

// ListForDriver returns the active fences that apply to a driver
func (h *Handler) ListForDriver(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driver_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid driver ID")
		return
	}

	fences, err := h.repo.GetActiveFencesForDriver(c.Request.Context(), driverID)
	if err != nil {
		common.HandleServiceError(c, err)
		return
	}
	if fences == nil {
		fences = []GeoFence{}
	}

	common.SuccessResponse(c, gin.H{"geofences": fences})
}
