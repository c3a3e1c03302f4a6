package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/config"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/handlers"
	"github.com/apraveen001/Travel-Agency-System/internal/middleware"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/apraveen001/Travel-Agency-System/pkg/cache"
	"github.com/apraveen001/Travel-Agency-System/pkg/events"
	"github.com/apraveen001/Travel-Agency-System/pkg/jwt"
	"github.com/apraveen001/Travel-Agency-System/pkg/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Travel Agency backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := validator.RegisterBindings(); err != nil {
		logger.Fatalf("Failed to register validators: %v", err)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Itinerary cache (optional)
	var itineraryCache services.ItineraryCache
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, itinerary cache disabled")
		} else {
			defer client.Close()
			itineraryCache = services.NewRedisItineraryCache(client)
			logger.WithField("addr", cfg.Redis.Addr).Info("Itinerary cache enabled")
		}
	}

	// Booking event publisher
	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.WithFields(logrus.Fields{
			"brokers": cfg.Kafka.Brokers,
			"topic":   kafkaPublisher.Topic(),
		}).Info("Publishing booking events to Kafka")
		publisher = kafkaPublisher
	} else {
		logger.Info("No Kafka brokers configured, booking events go to the log")
		publisher = events.NewLogPublisher(logger)
	}
	defer publisher.Close()

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	auditService := services.NewAuditService(db, cfg.Security.EnableAuditLog)
	rateLimitService := services.NewRateLimitService(db, services.RateLimitConfigFrom(cfg.Security))
	adminUserRepository := database.NewAdminUserRepository(db)
	adminRefreshTokenRepository := database.NewAdminRefreshTokenRepository(db)
	passengerRepository := database.NewPassengerRepository(db)

	adminAuthService := services.NewAdminAuthService(
		adminUserRepository,
		adminRefreshTokenRepository,
		jwtService,
		rateLimitService,
		auditService,
		cfg.Security.BcryptCost,
		logger,
	)
	itineraryService := services.NewItineraryService(
		passengerRepository,
		database.NewItineraryRepository(db),
		itineraryCache,
		cfg.Redis.ItineraryCacheTTL,
		logger,
	)
	bookingService := services.NewBookingService(db, itineraryService, publisher, logger)
	dashboardService := services.NewDashboardService(db)
	cronService := services.NewCronService(
		adminRefreshTokenRepository,
		rateLimitService,
		auditService,
		cfg.Cron.AuditRetentionDays,
		logger,
	)

	if cfg.Cron.Enabled {
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
	} else {
		logger.Info("Cron service disabled")
	}
	logger.Info("Services initialized")

	// Initialize handlers
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthService, auditService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, auditService, logger)
	itineraryHandler := handlers.NewItineraryHandler(itineraryService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	cronHandler := handlers.NewCronHandler(cronService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheckHandler(db))
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")

	// Public authentication routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", adminAuthHandler.Login)
		auth.POST("/refresh", adminAuthHandler.RefreshToken)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	canDelete := middleware.RequireRole("admin", "manager")
	adminOnly := middleware.RequireRole("admin")

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", adminAuthHandler.Logout)
		protectedAuth.GET("/profile", adminAuthHandler.GetProfile)
		protectedAuth.PUT("/password", adminAuthHandler.ChangePassword)
	}

	admin := protected.Group("/admin")
	admin.Use(adminOnly)
	{
		admin.POST("/users", adminAuthHandler.CreateAdmin)
		admin.GET("/users", adminAuthHandler.ListAdmins)
		admin.PATCH("/users/:id/active", adminAuthHandler.SetActive)
		admin.GET("/audit-logs", adminAuthHandler.ListAuditLogs)
		admin.GET("/cron/status", cronHandler.GetStatus)
		admin.POST("/cron/:job/run", cronHandler.RunJob)
	}

	// Reference data
	handlers.NewLocationHandler(database.NewLocationRepository(db), auditService).
		Register(protected.Group("/locations"), canDelete)
	handlers.NewPassengerHandler(passengerRepository, auditService).
		Register(protected.Group("/passengers"), canDelete)
	handlers.NewEmployeeHandler(database.NewEmployeeRepository(db), auditService).
		Register(protected.Group("/employees"), canDelete)
	handlers.NewAccommodationHandler(database.NewAccommodationRepository(db), auditService).
		Register(protected.Group("/accommodations"), canDelete)
	handlers.NewFlightHandler(database.NewFlightRepository(db), auditService).
		Register(protected.Group("/flights"), canDelete)
	handlers.NewCarRentalHandler(database.NewCarRentalRepository(db), auditService).
		Register(protected.Group("/car-rentals"), canDelete)
	handlers.NewCruiseHandler(database.NewCruiseRepository(db), auditService).
		Register(protected.Group("/cruises"), canDelete)
	handlers.NewActivityHandler(database.NewActivityRepository(db), auditService).
		Register(protected.Group("/activities"), canDelete)
	handlers.NewTravelGroupHandler(database.NewTravelGroupRepository(db), auditService).
		Register(protected.Group("/travel-groups"), canDelete)

	protected.GET("/passengers/:id/itinerary", itineraryHandler.GetPassengerItinerary)

	// Bookings
	bookingHandler.Register(protected.Group("/bookings"), canDelete)
	protected.PATCH("/payments/:id/status", bookingHandler.UpdatePaymentStatus)
	protected.DELETE("/reviews/:id", canDelete, bookingHandler.DeleteReview)

	// Reporting
	protected.GET("/dashboard/stats", dashboardHandler.GetStats)
	protected.GET("/available-options", dashboardHandler.GetAvailableOptions)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if cfg.Cron.Enabled {
		cronService.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler reports database reachability
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
