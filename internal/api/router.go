package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/greenheaven/storefront-api/docs"
	"github.com/greenheaven/storefront-api/internal/api/handler"
	"github.com/greenheaven/storefront-api/internal/api/middleware"
	"github.com/greenheaven/storefront-api/internal/core/domain"
	"github.com/greenheaven/storefront-api/internal/core/service"
	"github.com/greenheaven/storefront-api/internal/infrastructure/config"
	mongodb "github.com/greenheaven/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/greenheaven/storefront-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 0)
	cache := service.NewProductCache(cfg.Catalog.CacheTTL)
	catalogService := service.NewCatalogService(productRepo, cache, cfg.Catalog.QueryTimeout, log)
	guard := redisdb.NewCheckoutGuard(rdb)
	orderService := service.NewOrderService(orderRepo, productRepo, guard, log)

	authHandler := handler.NewAuthHandler(authService, authService.TokenTTL(), cfg.Env == "production")
	userHandler := handler.NewUserHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	session := middleware.Session(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/api/signup", authHandler.Signup)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout, session)

	// --- Profile ---
	e.GET("/api/user", userHandler.Profile, session)
	e.PUT("/api/user/update", userHandler.Update, session)

	// --- Catalog ---
	e.GET("/api/products", productHandler.List)
	e.POST("/api/products", productHandler.Create, session, adminOnly)
	e.PUT("/api/products/:id", productHandler.Update, session, adminOnly)
	e.DELETE("/api/products/:id", productHandler.Delete, session, adminOnly)

	// --- Orders ---
	e.POST("/api/orders", orderHandler.Create, session)
	e.GET("/api/orders", orderHandler.List, session)
	e.DELETE("/api/orders/:id", orderHandler.Delete, session)
	e.PATCH("/api/admin/orders/:id/status", orderHandler.UpdateStatus, session, adminOnly)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
