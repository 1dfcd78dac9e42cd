package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinghub-backend-go/internal/core"
)

// ContactHandler handles the credit-gated contact endpoints.
type ContactHandler struct {
	creditService  core.CreditService
	catalogService core.CatalogService
	userService    core.UserService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(cs core.CreditService, cat core.CatalogService, us core.UserService) *ContactHandler {
	return &ContactHandler{creditService: cs, catalogService: cat, userService: us}
}

// UnlockContact handles POST /api/v1/services/:city/:category/:serviceId/unlock.
// Spends one credit (at most once, ever, per user+service) and returns the
// contact details on success. A zero balance comes back as a 200 with
// success=false so the client can prompt a top-up instead of surfacing an
// error dialog.
func (h *ContactHandler) UnlockContact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user ID not found in context"})
		return
	}
	key := serviceKeyFromPath(c)

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found; initialize it first"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve user", Details: err.Error()})
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, core.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve service", Details: err.Error()})
		return
	}

	// Admins see contacts without a claim and without leaving a trace.
	if core.ResolveCapabilities(user.Role).CanBypassCredits {
		c.JSON(http.StatusOK, ContactResponse{
			Allowed:                true,
			Reason:                 core.ReasonRoleExempted,
			PhoneNumber:            svc.PhoneNumber,
			AlternativePhoneNumber: svc.AlternativePhoneNumber,
		})
		return
	}

	viewer := core.ViewerInfo{Name: user.DisplayName, PhoneNumber: user.PhoneNumber, Role: user.Role}
	result, err := h.creditService.DeductCredit(c.Request.Context(), userID, svc, viewer)
	if err != nil {
		// Integrity-critical failure: the claim transaction itself broke.
		log.Printf("UnlockContact: DeductCredit failed for user %s, service %s: %v", userID, svc.ID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to unlock contact", Details: err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusOK, UnlockResponse{OpResult: result})
		return
	}

	c.JSON(http.StatusOK, ContactResponse{
		Allowed:                true,
		Reason:                 result.Message,
		PhoneNumber:            svc.PhoneNumber,
		AlternativePhoneNumber: svc.AlternativePhoneNumber,
	})
}

// GetContact handles GET /api/v1/services/:city/:category/:serviceId/contact.
// Pure permission check: contact details are included only when already
// allowed, and nothing is ever deducted here.
func (h *ContactHandler) GetContact(c *gin.Context) {
	userID, _ := currentUserID(c)
	key := serviceKeyFromPath(c)

	role := ""
	if userID != "" {
		user, err := h.userService.GetByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve user", Details: err.Error()})
			return
		}
		if user != nil {
			role = user.Role
		}
	}

	decision, err := h.creditService.CanViewContact(c.Request.Context(), userID, key.ServiceID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check contact visibility", Details: err.Error()})
		return
	}

	resp := ContactResponse{Allowed: decision.Allowed, Reason: decision.Reason}
	// "has credits" only authorizes an unlock attempt; the details
	// themselves require the unlock (or an exempted role).
	if decision.Allowed && decision.Reason != core.ReasonHasCredits {
		svc, err := h.catalogService.GetService(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, core.ErrServiceNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve service", Details: err.Error()})
			return
		}
		resp.PhoneNumber = svc.PhoneNumber
		resp.AlternativePhoneNumber = svc.AlternativePhoneNumber
	}
	c.JSON(http.StatusOK, resp)
}
