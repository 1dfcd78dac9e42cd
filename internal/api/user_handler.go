package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/core"
	"weddinghub-backend-go/internal/models"
)

// UserHandler handles account and credit-record API endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// initializeRequest optionally declares the account role at first signup.
type initializeRequest struct {
	Role string `json:"role"`
}

// InitializeUserProfile handles POST /api/v1/users/initialize. Called
// after client-side Firebase login to ensure the credit record exists;
// first sight creates it with the signup balance.
func (h *UserHandler) InitializeUserProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	var req initializeRequest
	// Body is optional; an empty body means the default role.
	_ = c.ShouldBindJSON(&req)
	if req.Role == models.RoleAdmin {
		// Admin accounts are provisioned out of band, never self-declared.
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot self-assign the admin role"})
		return
	}

	displayName := c.GetString("userDisplayName")
	phoneNumber := c.GetString("userPhoneNumber")

	user, created, err := h.userService.GetOrCreate(c.Request.Context(), userID, displayName, phoneNumber, req.Role)
	if err != nil {
		log.Printf("InitializeUserProfile: GetOrCreate failed for userID %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile", Details: err.Error()})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// GetCurrentUserProfile handles GET /api/v1/users/me.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		log.Printf("GetCurrentUserProfile: GetByID failed for userID %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user profile", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetCredits handles GET /api/v1/credits, returning the balance plus the
// unlocked-service set in one response.
func (h *UserHandler) GetCredits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve credits", Details: err.Error()})
		return
	}

	set, err := h.userService.GetUnlockedServices(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve unlocked services", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CreditsResponse{Credits: user.Credits, Unlocked: set.Services})
}
