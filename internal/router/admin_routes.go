package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/handler"
	"github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/model"
)

// RegisterAdmin registers the moderation surface under /v1/admin,
// restricted to the admin role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.Authenticate(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/users", a.ListUsers)
	g.PATCH("/users/:id/status", a.SetUserStatus)
	g.PATCH("/users/:id/role", a.SetUserRole)
	g.DELETE("/users/:id", a.DeleteUser)

	g.GET("/properties", a.ListProperties)
	g.POST("/properties/:id/approve", a.ApproveProperty)
	g.POST("/properties/:id/reject", a.RejectProperty)

	g.GET("/role-requests", a.ListRoleRequests)
	g.POST("/role-requests/:id/approve", a.ApproveRoleRequest)
	g.POST("/role-requests/:id/reject", a.RejectRoleRequest)

	g.GET("/bookings", a.ListBookings)
	g.DELETE("/bookings/:id", a.CancelBooking)

	g.GET("/contact", a.ListContactMessages)
	g.POST("/contact/:id/seen", a.MarkContactSeen)
	g.POST("/contact/:id/reply", a.ReplyContact)

	g.GET("/settings", a.GetSettings)
	g.PATCH("/settings", a.UpdateSettings)
}
