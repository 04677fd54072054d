package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-api/config"
	deliveryHttp "clinic-booking-api/internal/delivery/http"
	"clinic-booking-api/internal/delivery/http/handler"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/delivery/websocket"
	"clinic-booking-api/internal/infrastructure/cache"
	"clinic-booking-api/internal/infrastructure/database"
	"clinic-booking-api/internal/repository"
	"clinic-booking-api/internal/service"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/jwt"
	"clinic-booking-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Hub         *websocket.Hub
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply database migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Hub = websocket.NewHub(logrus.StandardLogger())
	app.Server = initializeServer(cfg, db, redisClient, app.Hub)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, services, usecases, handlers and the
// router into an HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, hub *websocket.Hub) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorRepo := repository.NewDoctorRepository()
	clinicRepo := repository.NewClinicRepository()
	assistantRepo := repository.NewAssistantRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	tokenRepo := repository.NewTokenAppointmentRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditRepo)
	notificationService := service.NewLogNotificationService(log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, jwtService, redisClient, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, userRepo, appointmentRepo, auditService)
	clinicUsecase := usecase.NewClinicUsecase(db, log, clinicRepo, auditService)
	assistantUsecase := usecase.NewAssistantUsecase(db, log, assistantRepo, doctorRepo, userRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, tokenRepo, doctorRepo, clinicRepo, auditService)
	bookingUsecase := usecase.NewBookingUsecase(db, log, &cfg.Booking, tokenRepo, appointmentRepo, doctorRepo, assistantRepo, auditService, notificationService, hub)
	dashboardUsecase := usecase.NewDoctorDashboardUsecase(db, log, doctorRepo, clinicRepo, assistantRepo, appointmentRepo, tokenRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	clinicHandler := handler.NewClinicHandler(clinicUsecase, customValidator)
	assistantHandler := handler.NewAssistantHandler(assistantUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		doctorHandler,
		clinicHandler,
		assistantHandler,
		appointmentHandler,
		bookingHandler,
		dashboardHandler,
		auditLogHandler,
		hub,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start live board hub
	go app.Hub.Run()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
