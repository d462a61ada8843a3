package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"marketplace-listings/internal/handlers"
	"marketplace-listings/internal/middleware"
	"marketplace-listings/internal/models"
	"marketplace-listings/internal/repositories"
	"marketplace-listings/internal/services"
	"marketplace-listings/internal/transformers"
	"marketplace-listings/internal/validators"
	"marketplace-listings/pkg/cache"
	"marketplace-listings/pkg/config"
	"marketplace-listings/pkg/database"
	"marketplace-listings/pkg/listingsapi"
	"marketplace-listings/pkg/logger"
	"marketplace-listings/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	PropertyHandler *handlers.PropertyHandler
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server

	// Store is Redis when enabled, otherwise an in-process cache.
	Store cache.Store
	// Database is nil when the snapshot store is disabled.
	Database *database.MongoDatabase

	stopCleanup context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the snapshot database connection
func (a *App) initializeDatabase() {
	if !a.Config.Database.Enabled {
		logger.Get().Println("MongoDB disabled, snapshot fallback unavailable")
		return
	}
	if err := database.InitDB(a.Config); err != nil {
		logger.Get().Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	a.Database = database.NewMongoDatabase(database.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Database.CreateSnapshotIndexes(ctx); err != nil {
		logger.Get().Warnf("Failed to create snapshot indexes: %v", err)
	}
}

// initialize the listing cache
func (a *App) initializeCache() {
	if !a.Config.Redis.Enabled {
		logger.Get().Println("Redis disabled, using in-memory listing cache")
		a.Store = cache.NewCache()
		return
	}
	if err := cache.InitRedis(a.Config); err != nil {
		logger.Get().Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	a.Store = cache.NewRedisStore(cache.RedisClient)
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	rl := a.Config.RateLimit
	a.RateLimiter = middleware.NewRateLimiter(middleware.PerMinute(rl.RequestsPerMinute), rl.Burst)

	ctx, cancel := context.WithCancel(context.Background())
	a.stopCleanup = cancel
	go a.RateLimiter.Cleanup(ctx, time.Hour)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// repositories
	propertyCache := repositories.NewPropertyCache(a.Store)
	var propertyRepo repositories.PropertyRepository
	if a.Database != nil {
		propertyRepo = repositories.NewPropertyRepository(a.Database.Database())
	}

	var source repositories.ListingSource
	if up := a.Config.Upstream; up.BaseURL != "" {
		source = listingsapi.NewClient(listingsapi.Config{
			BaseURL:    up.BaseURL,
			ListPath:   up.ListPath,
			DetailPath: up.DetailPath,
			APIKey:     up.APIKey,
			Timeout:    up.Timeout,
			RetryMax:   up.RetryMax,
			MaxPages:   up.MaxPages,
		})
	} else {
		logger.Get().Warn("No upstream listings API configured")
	}

	// transformers
	propTrans := transformers.NewPropertyTransformer(a.Config.Search.PlaceholderImage)

	// validators
	filterValidator := validators.NewFilterValidator()

	// services
	defaultLang := models.Language(a.Config.Search.DefaultLanguage)
	searchService := services.NewPropertySearchService(source, propertyRepo, propertyCache, propTrans, filterValidator, services.SearchOptions{
		CacheTTL:        a.Config.Search.CacheTTL,
		DefaultLanguage: defaultLang,
		PerPage:         a.Config.Search.PerPage,
		MaxPerPage:      a.Config.Search.MaxPerPage,
	})

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(searchService, defaultLang)
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
	database.CloseDB()
	cache.CloseRedis()
}
