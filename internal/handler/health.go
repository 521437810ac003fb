package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/database"
)

// Health reports liveness. It always answers ok while the process is
// up; readiness of the store is checked separately.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready reports readiness by acquiring the shared store handle and
// pinging it. A schema-drift or initialization failure surfaces here
// as 503, which keeps a misconfigured instance out of rotation.
func Ready(m *database.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		db, err := m.Acquire(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
		}
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	}
}
