// Package router wires the HTTP routes onto an Echo instance. Routes
// are grouped by audience: public browse, authenticated users, owners
// and admins, each with its own middleware chain.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/database"
	"github.com/renthaven/property-rental-marketplace/internal/handler"
)

// RegisterHealth registers the probe endpoints. These carry no
// authentication so orchestrators can reach them.
func RegisterHealth(e *echo.Echo, m *database.Manager) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(m))
}
