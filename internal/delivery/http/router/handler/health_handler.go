package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Root answers GET / with a plain liveness banner.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Inventory Management API is running.")
}

// HealthCheck answers GET /health.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
