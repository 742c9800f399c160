package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"spacia-portal/internal/handlers"
	"spacia-portal/internal/middleware"
	"spacia-portal/internal/services"
	"spacia-portal/internal/session"
	"spacia-portal/internal/upload"
	"spacia-portal/internal/validators"
	"spacia-portal/pkg/config"
	"spacia-portal/pkg/logger"
	"spacia-portal/pkg/metrics"
	"spacia-portal/pkg/sessionstore"
	"spacia-portal/pkg/spacia"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	PropertyHandler *handlers.PropertyHandler
	UserHandler     *handlers.UserHandler
	UserService     *services.UserService
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server

	sessions    session.Store
	redisClient *redis.Client
	client      *spacia.Client
	stopCleanup context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeMetrics()
	app.initializeSessionStore()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the session store, in memory or in Redis
func (a *App) initializeSessionStore() {
	if a.Config.Session.Store != config.SessionStoreRedis {
		a.sessions = session.NewMemoryStore()
		logger.GlobalLogger.Println("Using in-memory session store")
		return
	}

	client, err := sessionstore.Connect(context.Background(), a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	a.redisClient = client
	a.sessions = session.NewRedisStore(sessionstore.New(client))
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(middleware.PerMinute(a.Config.Server.RatePerMinute), a.Config.Server.RateBurst)

	ctx, cancel := context.WithCancel(context.Background())
	a.stopCleanup = cancel
	go a.RateLimiter.Cleanup(ctx, time.Minute)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	a.client = spacia.NewClient(a.Config.BaseURL(), a.Config.API.Timeout)

	// validators
	userValidator := validators.NewUserValidator()

	// services
	a.UserService = services.NewUserService(a.client, userValidator, a.sessions, a.Config.Session.TTL)
	propertyService := services.NewPropertyService(
		a.client,
		upload.Policy(a.Config.Upload.FailurePolicy),
		upload.NewSelector(a.Config.Upload.MaxFileBytes),
	)

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(propertyService, a.Config.Upload.MaxFileBytes)
	a.UserHandler = handlers.NewUserHandler(a.UserService, handlers.CookieConfig{
		Name:   a.Config.Session.CookieName,
		Secure: os.Getenv("ENV") == "production",
	})
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.GlobalLogger.Errorf("Failed to close Redis client: %v", err)
		}
	}
}
