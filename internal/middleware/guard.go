package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/dmelikov/user-auth-api/internal/auth"
)

// Guard adapts an authorization predicate into an Echo middleware. A
// denial short-circuits the route handler; the resulting HTTPError is
// formatted by the central error handler so every denial shares the
// same response shape.
func Guard(p auth.Predicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d := p(CurrentIdentity(c)); !d.Allowed {
				return echo.NewHTTPError(d.Status, d.Message)
			}
			return next(c)
		}
	}
}
