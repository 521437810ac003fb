package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/handler"
	"github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// RegisterUser registers the authenticated guest endpoints under /v1.
// Every signed-in role may use them; owners and admins book stays and
// read notifications like anyone else.
func RegisterUser(e *echo.Echo, u *handler.UserHandler, a *handler.AccountHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.Authenticate(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleOwner, model.RoleAdmin),
	)

	g.GET("/me", a.Me)
	g.PUT("/me", a.UpdateProfile)

	g.POST("/bookings", u.CreateBooking)
	g.GET("/bookings", u.ListMyBookings)
	g.DELETE("/bookings/:id", u.CancelMyBooking)

	g.POST("/role-request", u.SubmitRoleRequest)
	g.GET("/role-request", u.GetMyRoleRequest)

	g.GET("/notifications", u.ListNotifications)
	g.POST("/notifications/:id/read", u.MarkNotificationRead)
	g.POST("/notifications/read-all", u.MarkAllNotificationsRead)

	g.POST("/support", u.SubmitContact)
	g.GET("/support", u.ListMyContactMessages)
}
