package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/handler"
	"github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// RegisterOwner registers owner-scoped endpoints under /v1/owner. All
// routes require the owner role; admins may use them too for support
// interventions.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.Authenticate(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin),
	)

	g.POST("/properties", o.CreateListing)
	g.GET("/properties", o.ListMyListings)
	g.PUT("/properties/:id", o.UpdateListing)
	g.DELETE("/properties/:id", o.DeleteListing)

	g.GET("/bookings", o.ListBookings)
	g.POST("/bookings/:id/approve", o.ApproveBooking)
	g.DELETE("/bookings/:id", o.CancelBooking)
}
