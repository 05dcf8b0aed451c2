// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"inventory/config"
	"inventory/internal/delivery/http/middleware"
	"inventory/internal/delivery/http/router/handler"
	"inventory/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	staticDir      string
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		staticDir:      params.Config.HTTP.StaticDir,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	if r.staticDir != "" {
		e.Static("/", r.staticDir)
	}

	e.POST("/register", r.userHandler.Register)
	e.POST("/login", r.userHandler.Login)

	productGroup := e.Group("/products")
	productGroup.Use(r.authMiddleware.Authenticate)
	{
		productGroup.POST("", r.productHandler.Create)
		productGroup.GET("", r.productHandler.List)
		productGroup.PUT("/:id/quantity", r.productHandler.UpdateQuantity)
		productGroup.GET("/:id/label", r.productHandler.Label)
	}
}
