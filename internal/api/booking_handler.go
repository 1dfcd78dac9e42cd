package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/core"
	"weddinghub-backend-go/internal/models"
)

// BookingHandler handles booking, review and availability endpoints.
type BookingHandler struct {
	bookingService      core.BookingService
	availabilityService core.AvailabilityService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs core.BookingService, as core.AvailabilityService) *BookingHandler {
	return &BookingHandler{bookingService: bs, availabilityService: as}
}

// CreateBooking handles POST /api/v1/services/:city/:category/:serviceId/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, serviceKeyFromPath(c), req)
	if err != nil {
		h.writeBookingError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CreateReview handles POST /api/v1/services/:city/:category/:serviceId/reviews.
func (h *BookingHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	review, err := h.bookingService.CreateReview(c.Request.Context(), userID, c.GetString("userDisplayName"), serviceKeyFromPath(c), req)
	if err != nil {
		h.writeBookingError(c, err, "Failed to create review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetAvailability handles GET /api/v1/services/:city/:category/:serviceId/availability
// with required from/to query parameters. Days absent from the returned
// map are available.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to query parameters are required (YYYY-MM-DD)"})
		return
	}

	statuses, err := h.availabilityService.DateStatuses(c.Request.Context(), c.Param("serviceId"), from, to)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date range", Details: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read availability", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceId": c.Param("serviceId"), "dates": statuses})
}

func (h *BookingHandler) writeBookingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found"})
	case errors.Is(err, core.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date", Details: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback, Details: err.Error()})
	}
}
