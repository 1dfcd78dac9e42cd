package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/core"
	"weddinghub-backend-go/internal/models"
)

// CatalogHandler handles vendor service lifecycle and browse endpoints.
type CatalogHandler struct {
	catalogService core.CatalogService
	userService    core.UserService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cat core.CatalogService, us core.UserService) *CatalogHandler {
	return &CatalogHandler{catalogService: cat, userService: us}
}

// resolveCapabilities loads the requester's role and maps it to a
// capability set once for the request.
func (h *CatalogHandler) resolveCapabilities(c *gin.Context, userID string) (core.Capabilities, bool) {
	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found; initialize it first"})
			return core.Capabilities{}, false
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve user", Details: err.Error()})
		return core.Capabilities{}, false
	}
	return core.ResolveCapabilities(user.Role), true
}

// Browse handles GET /api/v1/services/:city/:category with optional
// maxPrice, dateFrom and dateTo query parameters.
func (h *CatalogHandler) Browse(c *gin.Context) {
	cityID := c.Param("city")
	categoryID := c.Param("category")

	var maxPrice int64
	if raw := c.Query("maxPrice"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "maxPrice must be a non-negative integer"})
			return
		}
		maxPrice = parsed
	}
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")
	if (dateFrom == "") != (dateTo == "") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dateFrom and dateTo must be provided together"})
		return
	}

	services, err := h.catalogService.Browse(c.Request.Context(), cityID, categoryID, maxPrice, dateFrom, dateTo)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date range", Details: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to browse services", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ServiceListResponse{
		Category:      categoryID,
		CategoryLabel: h.catalogService.CategoryLabel(c.Request.Context(), categoryID),
		Services:      services,
	})
}

// GetService handles GET /api/v1/services/:city/:category/:serviceId.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.catalogService.GetService(c.Request.Context(), serviceKeyFromPath(c))
	if err != nil {
		if errors.Is(err, core.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve service", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// SaveService handles POST /api/v1/vendor/services (create and update).
func (h *CatalogHandler) SaveService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	var req models.SaveServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	svc, key, err := h.catalogService.SaveVendorService(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrForbiddenAccess) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not the owner of this service"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save service", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc, "key": key})
}

// ListVendorServices handles GET /api/v1/vendor/services, scoped by the
// city and category query parameters.
func (h *CatalogHandler) ListVendorServices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}
	cityID := c.Query("city")
	categoryID := c.Query("category")
	if cityID == "" || categoryID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "city and category query parameters are required"})
		return
	}

	services, err := h.catalogService.ListVendorServices(c.Request.Context(), core.NormalizeID(cityID), core.NormalizeID(categoryID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vendor services", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// SetActive handles PATCH /api/v1/vendor/services/:city/:category/:serviceId/active.
func (h *CatalogHandler) SetActive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}
	caps, ok := h.resolveCapabilities(c, userID)
	if !ok {
		return
	}

	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must carry a boolean 'value'"})
		return
	}

	err := h.catalogService.SetActive(c.Request.Context(), serviceKeyFromPath(c), userID, caps, *req.Value)
	if err != nil {
		h.writeLifecycleError(c, err, "Failed to toggle service")
		return
	}
	c.JSON(http.StatusOK, models.OpResult{Success: true, Message: "active flag updated"})
}

// SetVerified handles PATCH /api/v1/admin/services/:city/:category/:serviceId/verified.
func (h *CatalogHandler) SetVerified(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}
	caps, ok := h.resolveCapabilities(c, userID)
	if !ok {
		return
	}

	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must carry a boolean 'value'"})
		return
	}

	err := h.catalogService.SetVerified(c.Request.Context(), serviceKeyFromPath(c), caps, *req.Value)
	if err != nil {
		h.writeLifecycleError(c, err, "Failed to update verified flag")
		return
	}
	c.JSON(http.StatusOK, models.OpResult{Success: true, Message: "verified flag updated"})
}

// DeleteService handles DELETE /api/v1/vendor/services/:city/:category/:serviceId,
// triggering the full cascading delete.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}
	caps, ok := h.resolveCapabilities(c, userID)
	if !ok {
		return
	}

	err := h.catalogService.DeleteVendorService(c.Request.Context(), serviceKeyFromPath(c), userID, caps)
	if err != nil {
		h.writeLifecycleError(c, err, "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, models.OpResult{Success: true, Message: "service deleted"})
}

// writeLifecycleError maps catalog lifecycle errors to HTTP statuses.
func (h *CatalogHandler) writeLifecycleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found"})
	case errors.Is(err, core.ErrForbiddenAccess):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not permitted for this service"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback, Details: err.Error()})
	}
}
