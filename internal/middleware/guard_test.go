package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelikov/user-auth-api/internal/auth"
	"github.com/dmelikov/user-auth-api/internal/model"
)

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestCurrentIdentity_DefaultsToAnonymous(t *testing.T) {
	c, _ := newContext(t)
	assert.Nil(t, CurrentIdentity(c))
}

func TestGuard_Allows(t *testing.T) {
	c, rec := newContext(t)
	c.Set(identityKey, &auth.Identity{ID: "u1", Username: "alice", Role: model.RoleUser})

	err := Guard(auth.RequireAuthenticated)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_DeniesWithPredicateStatus(t *testing.T) {
	c, _ := newContext(t)

	err := Guard(auth.RequireAuthenticated)(okHandler)(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, auth.MsgUnauthenticated, he.Message)
}

func TestGuard_DenialShortCircuitsHandler(t *testing.T) {
	c, _ := newContext(t)
	called := false
	h := func(c echo.Context) error { called = true; return nil }

	_ = Guard(auth.RequireAdmin)(h)(c)
	assert.False(t, called)
}
