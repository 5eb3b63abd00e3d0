package middleware // middleware provides shared request processing for handlers

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/dmelikov/user-auth-api/internal/auth"
)

// identityKey is the echo context key under which the resolved identity
// is stored for the duration of one request.
const identityKey = "identity"

// ResolveIdentity returns an Echo middleware that runs the authentication
// resolver on every request and stores the outcome in the context. It
// never blocks or fails the request: an unusable credential simply
// resolves to anonymous, and the authorization guards downstream decide
// what that means for the route.
func ResolveIdentity(r *auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			id := r.Resolve(c.Request().Context(), header)
			if id != nil {
				slog.DebugContext(c.Request().Context(), "request authenticated",
					slog.String("user_id", id.ID), slog.String("role", string(id.Role)))
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity resolved for this request, or nil
// for anonymous callers (including requests that bypassed ResolveIdentity).
func CurrentIdentity(c echo.Context) *auth.Identity {
	if id, ok := c.Get(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
