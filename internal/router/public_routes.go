package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints.
// These are the routes the optional Redis response cache fronts; the
// cache middleware is passed in so it only wraps this surface.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, a *handler.AccountHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/properties", p.ListProperties)
	g.GET("/properties/:id", p.GetProperty)

	// Writes bypass the cache group.
	e.POST("/v1/contact", p.SubmitContact)
	e.POST("/v1/auth/register", a.Register)
}
