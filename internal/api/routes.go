package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weddinghub-backend-go/internal/core"
	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/middleware"
)

// SetupRoutes configures all application routes. Global middleware
// (logging, recovery, CORS) is applied to the router before this is
// called, in main.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	userService core.UserService,
	creditService core.CreditService,
	engagementService core.EngagementService,
	cartService core.CartService,
	catalogService core.CatalogService,
	availabilityService core.AvailabilityService,
	bookingService core.BookingService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		// The application cannot secure routes without it.
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized; routes will not be set up.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	userHandler := NewUserHandler(userService)
	contactHandler := NewContactHandler(creditService, catalogService, userService)
	cartHandler := NewCartHandler(cartService)
	catalogHandler := NewCatalogHandler(catalogService, userService)
	engagementHandler := NewEngagementHandler(engagementService)
	bookingHandler := NewBookingHandler(bookingService, availabilityService)

	apiV1 := router.Group("/api/v1")
	{
		usersGroup := apiV1.Group("/users")
		{
			// Called after client-side Firebase phone login to ensure the
			// credit record exists.
			usersGroup.POST("/initialize", authMW.VerifyToken(), userHandler.InitializeUserProfile)
			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		apiV1.GET("/credits", authMW.VerifyToken(), userHandler.GetCredits)

		servicesGroup := apiV1.Group("/services/:city/:category")
		{
			servicesGroup.GET("", catalogHandler.Browse)
			servicesGroup.GET("/:serviceId", catalogHandler.GetService)
			servicesGroup.GET("/:serviceId/availability", bookingHandler.GetAvailability)

			// The contact check is anonymous-tolerant: without a token it
			// answers "login required" instead of 401.
			servicesGroup.GET("/:serviceId/contact", authMW.OptionalToken(), contactHandler.GetContact)
			servicesGroup.POST("/:serviceId/unlock", authMW.VerifyToken(), contactHandler.UnlockContact)

			servicesGroup.POST("/:serviceId/bookings", authMW.VerifyToken(), bookingHandler.CreateBooking)
			servicesGroup.POST("/:serviceId/reviews", authMW.VerifyToken(), bookingHandler.CreateReview)
		}

		cartGroup := apiV1.Group("/cart", authMW.VerifyToken())
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.GET("/count", cartHandler.GetActiveCount)
			cartGroup.POST("", cartHandler.AddToCart)
			cartGroup.DELETE("/:serviceId", cartHandler.RemoveFromCart)
		}

		vendorGroup := apiV1.Group("/vendor", authMW.VerifyToken())
		{
			vendorGroup.POST("/services", catalogHandler.SaveService)
			vendorGroup.GET("/services", catalogHandler.ListVendorServices)
			vendorGroup.PATCH("/services/:city/:category/:serviceId/active", catalogHandler.SetActive)
			vendorGroup.DELETE("/services/:city/:category/:serviceId", catalogHandler.DeleteService)
			vendorGroup.GET("/engagements", engagementHandler.ListVendorEngagements)
		}

		adminGroup := apiV1.Group("/admin", authMW.VerifyToken())
		{
			// Capability enforcement happens in the service layer.
			adminGroup.PATCH("/services/:city/:category/:serviceId/verified", catalogHandler.SetVerified)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "WeddingHub backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
