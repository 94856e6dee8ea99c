package main

import (
	"shoplist-service/internal/graph"
	"shoplist-service/internal/handler"
	"shoplist-service/internal/middleware"
	"shoplist-service/internal/service"
	"shoplist-service/pkg/config"
	"shoplist-service/pkg/database"
	"shoplist-service/pkg/jwtutil"
	"shoplist-service/pkg/logger"
	"shoplist-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting shopping list service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire services
	db := database.GetDB()
	users := service.NewUsersService(db)
	auth := service.NewAuthService(users)
	items := service.NewItemsService(db)
	lists := service.NewListsService(db)
	listItems := service.NewListItemsService(db)
	seed := service.NewSeedService(db, users, items, lists, listItems, cfg.IsProduction())

	// Build GraphQL schema
	schema, err := graph.NewSchema(graph.Services{
		Auth:      auth,
		Users:     users,
		Items:     items,
		Lists:     lists,
		ListItems: listItems,
		Seed:      seed,
	})
	if err != nil {
		log.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}
	log.Info("GraphQL schema built")

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// The whole API lives on one GraphQL endpoint. The auth middleware only
	// loads the user when a token is present; resolvers enforce access.
	authMiddleware := middleware.NewAuthMiddleware(auth)
	gql := handler.GraphQL(schema, !cfg.IsProduction())
	e.POST("/graphql", gql, authMiddleware.LoadUser)
	if !cfg.IsProduction() {
		e.GET("/graphql", gql, authMiddleware.LoadUser)
	}

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
