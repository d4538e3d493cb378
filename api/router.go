// Package api wires controllers and middleware into the gin engine.
package api

import (
	"mealshop/api/cart"
	"mealshop/api/health"
	"mealshop/api/menu"
	"mealshop/api/middleware"
	"mealshop/api/order"
	"mealshop/config"

	"github.com/gin-gonic/gin"
)

// Router holds the engine and the controllers to mount on it.
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	menuController   *menu.Controller
	cartController   *cart.Controller
	orderController  *order.Controller
}

// NewRouter builds the engine with the middleware chain installed.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	menuController *menu.Controller,
	cartController *cart.Controller,
	orderController *order.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before anything
	// logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		menuController:   menuController,
		cartController:   cartController,
		orderController:  orderController,
	}
}

// SetupRoutes mounts all controllers under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.menuController.RegisterRoutes(apiGroup)
		r.cartController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
