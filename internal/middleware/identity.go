package middleware

import "github.com/labstack/echo/v4"

// UserID returns the authenticated user's uid from the context, or ""
// on unauthenticated routes.
func UserID(c echo.Context) string {
	if v, ok := c.Get(CtxUserID).(string); ok {
		return v
	}
	return ""
}

// Role returns the authenticated user's role, or "" when absent.
func Role(c echo.Context) string {
	if v, ok := c.Get(CtxRole).(string); ok {
		return v
	}
	return ""
}

// rateKeyUserID is like UserID but never empty, for rate-limit keys.
func rateKeyUserID(c echo.Context) string {
	if uid := UserID(c); uid != "" {
		return uid
	}
	return "anon"
}
