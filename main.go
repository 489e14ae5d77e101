// File: uprocket/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uprocket/config"
	"uprocket/cron"
	"uprocket/database"
	recordsRepo "uprocket/database/repository/records"
	userRepoPkg "uprocket/database/repository/user"
	"uprocket/handlers"
	"uprocket/middleware"
	"uprocket/routes"
	"uprocket/services/booking"
	"uprocket/services/directory"
	"uprocket/services/payment"
	"uprocket/services/scheduling"
	"uprocket/services/tasks"
	"uprocket/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitBookingCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewFirebaseUserRepo()
	bookingRecords := recordsRepo.NewMongoRecordRepo()

	// services.
	directoryService := &directory.DefaultDirectoryService{
		Repo: userRepo,
	}

	nylasClient := scheduling.NewClient()
	sessionIssuer := &scheduling.DefaultSessionIssuer{
		Directory: directoryService,
		Nylas:     nylasClient,
	}
	configService := &scheduling.DefaultConfigService{
		Directory: directoryService,
		Nylas:     nylasClient,
	}

	bookingCache := utils.GetBookingCacheClient()
	pendingStore := &booking.RedisPendingBookingStore{Client: bookingCache}
	expiryEnqueuer := &tasks.AsynqEnqueuer{Client: tasks.NewAsynqClient()}

	orchestrator := &booking.DefaultOrchestrator{
		Store:     &booking.RedisSchedulerStore{Client: bookingCache},
		Connector: &booking.NylasSchedulerConnector{Nylas: nylasClient},
		Pending:   pendingStore,
		Records:   bookingRecords,
		Tasks:     expiryEnqueuer,
		Logger:    logger,
	}

	checkoutService := &payment.StripeCheckoutService{Logger: logger}

	// handlers.
	authHandler := handlers.NewAuthHandler(utils.GetAuthClient(), directoryService)
	userHandler := handlers.NewUserHandler(directoryService, bookingRecords)
	contractorHandler := handlers.NewContractorHandler(directoryService)
	sessionHandler := handlers.NewSessionHandler(sessionIssuer)
	configHandler := handlers.NewSchedulerConfigHandler(directoryService, configService)
	calendarsHandler := handlers.NewCalendarsHandler(directoryService, nylasClient)
	bookingHandler := handlers.NewBookingHandler(directoryService, orchestrator, pendingStore, nylasClient, bookingRecords, logger)
	checkoutHandler := handlers.NewCheckoutHandler(pendingStore, checkoutService)
	storageHandler := handlers.NewStorageHandler(cloudinaryStorageService, directoryService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Verifier: utils.GetAuthClient(),

		// Auth endpoints.
		LoginHandler:  authHandler.LoginHandler,
		LogoutHandler: authHandler.LogoutHandler,

		// Profile endpoints.
		GetMeHandler:         userHandler.GetMeHandler,
		UpdateMeHandler:      userHandler.UpdateMeHandler,
		GetMyBookingsHandler: userHandler.GetMyBookingsHandler,

		// Contractor directory endpoints.
		ListContractorsHandler: contractorHandler.ListContractorsHandler,
		GetContractorHandler:   contractorHandler.GetContractorHandler,

		// Scheduling endpoints.
		CreateSessionHandler: sessionHandler.CreateSessionHandler,
		GetConfigHandler:     configHandler.GetConfigHandler,
		SetConfigHandler:     configHandler.SetConfigHandler,
		GetCalendarsHandler:  calendarsHandler.GetCalendarsHandler,

		// Booking endpoints.
		ConfirmTimeslotHandler: bookingHandler.ConfirmTimeslotHandler,
		ConfirmBookingHandler:  bookingHandler.ConfirmBookingHandler,
		CancelBookingHandler:   bookingHandler.CancelBookingHandler,

		// Checkout endpoints.
		CreateCheckoutHandler: checkoutHandler.CreateCheckoutHandler,

		// Storage endpoints.
		UploadProfilePictureHandler: storageHandler.UploadProfilePictureHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the expiry worker that cancels unpaid pre-bookings.
	cron.InitExpiryWorker(pendingStore, directoryService, nylasClient, bookingRecords)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
