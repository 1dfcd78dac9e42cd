package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"weddinghub-backend-go/internal/api"
	"weddinghub-backend-go/internal/config"
	"weddinghub-backend-go/internal/core"
	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/middleware"
)

func main() {
	// Load .env in development; production sets env vars directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: no .env file loaded:", err)
		}
	}

	// --- Logger ---
	var zapLogger *zap.Logger
	var err error
	if strings.ToLower(os.Getenv("GIN_MODE")) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// --- Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore or Firebase Auth client is nil after initialization.")
	}

	// --- Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	engagementRepo := db.NewFirestoreEngagementRepository(firestoreClient)
	cartRepo := db.NewFirestoreCartRepository(firestoreClient)
	serviceRepo := db.NewFirestoreServiceRepository(firestoreClient)
	availabilityRepo := db.NewFirestoreAvailabilityRepository(firestoreClient)
	bookingRepo := db.NewFirestoreBookingRepository(firestoreClient)
	reviewRepo := db.NewFirestoreReviewRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- Core services ---
	userService := core.NewUserService(userRepo, appConfig.SignupCredits)
	engagementService := core.NewEngagementService(engagementRepo, zapLogger)
	creditService := core.NewCreditService(userRepo, engagementService, zapLogger)
	cartService := core.NewCartService(cartRepo, serviceRepo, zapLogger)
	availabilityService := core.NewAvailabilityService(availabilityRepo, zapLogger)
	catalogService := core.NewCatalogService(
		serviceRepo, availabilityRepo, bookingRepo, reviewRepo,
		cartRepo, userRepo, engagementRepo,
		availabilityService, appConfig.CategoryCacheTTL, zapLogger,
	)
	bookingService := core.NewBookingService(bookingRepo, reviewRepo, serviceRepo)
	zapLogger.Info("Core services initialized successfully.")

	// --- Gin engine and global middleware ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	// --- Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		userService,
		creditService,
		engagementService,
		cartService,
		catalogService,
		availabilityService,
		bookingService,
	)

	// --- HTTP server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
