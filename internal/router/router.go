// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dmelikov/user-auth-api/internal/auth"
	"github.com/dmelikov/user-auth-api/internal/handler"
	"github.com/dmelikov/user-auth-api/internal/middleware"
)

// RegisterRoutes registers routes that sit outside the authentication
// pipeline. Currently it exposes only a health check, used by load
// balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterUserRoutes wires the credential lifecycle endpoints and the
// three sample pages. The identity resolver runs on every route in the
// group and never rejects a request by itself; each route then carries
// exactly one authorization guard deciding who may pass.
func RegisterUserRoutes(e *echo.Echo, a *handler.AuthHandler, r *auth.Resolver) {
	g := e.Group("/users", middleware.ResolveIdentity(r))

	// Lifecycle operations, reachable only while not logged in.
	g.POST("/register", a.Register, middleware.Guard(auth.RequireAnonymous))
	g.POST("/login", a.Login, middleware.Guard(auth.RequireAnonymous))

	// Sample pages, one per authorization predicate.
	g.GET("/visitors", handler.Visitors, middleware.Guard(auth.RequireAnonymous))
	g.GET("/non-admins", handler.NonAdmins, middleware.Guard(auth.RequireNonAdmin))
	g.GET("/admins", handler.Admins, middleware.Guard(auth.RequireAdmin))
}
