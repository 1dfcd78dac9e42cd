package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/core"
	"weddinghub-backend-go/internal/models"
)

// CartHandler handles the per-user cart endpoints.
type CartHandler struct {
	cartService core.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cs core.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

// GetCart handles GET /api/v1/cart, returning the raw cart map.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve cart", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetActiveCount handles GET /api/v1/cart/count. The count is derived:
// entries whose service was deactivated or deleted drop out without the
// raw cart being mutated.
func (h *CartHandler) GetActiveCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	count, err := h.cartService.ActiveCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute active cart count", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, CartCountResponse{ActiveCount: count})
}

// AddToCart handles POST /api/v1/cart. A duplicate add is a 200 with
// success=false and "already in cart", not an error.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	result, err := h.cartService.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add to cart", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveFromCart handles DELETE /api/v1/cart/:serviceId.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}
	serviceID := c.Param("serviceId")
	if serviceID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "serviceId path parameter is required"})
		return
	}

	result, err := h.cartService.RemoveFromCart(c.Request.Context(), userID, serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove from cart", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
