package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/core"
)

// EngagementHandler handles vendor lead-analytics endpoints.
type EngagementHandler struct {
	engagementService core.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(es core.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: es}
}

// ListVendorEngagements handles GET /api/v1/vendor/engagements. The
// authenticated user is the vendor; each record is who viewed their
// contact info, most recent first.
func (h *EngagementHandler) ListVendorEngagements(c *gin.Context) {
	vendorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	records, err := h.engagementService.GetVendorEngagements(c.Request.Context(), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve engagements", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
