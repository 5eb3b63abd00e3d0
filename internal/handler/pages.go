package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmelikov/user-auth-api/internal/middleware"
)

// The three sample routes exist to exercise the authorization table:
// one for anonymous visitors, one for authenticated non-admins and one
// for admins. Their business logic is a canned greeting.

// Visitors greets callers that are not logged in.
func Visitors(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Welcome, visitor! Register or log in to see more.",
	})
}

// NonAdmins greets authenticated regular users by name.
func NonAdmins(c echo.Context) error {
	id := middleware.CurrentIdentity(c)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Hello %s, welcome to the users page!", id.Username),
	})
}

// Admins greets authenticated admins by name.
func Admins(c echo.Context) error {
	id := middleware.CurrentIdentity(c)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Hello %s, welcome to the admin dashboard!", id.Username),
	})
}
