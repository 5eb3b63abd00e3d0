package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmelikov/user-auth-api/internal/model"
)

func TestAuthorizationTable(t *testing.T) {
	anonymous := (*Identity)(nil)
	user := &Identity{ID: "u1", Username: "alice", Role: model.RoleUser}
	admin := &Identity{ID: "a1", Username: "root", Role: model.RoleAdmin}

	tests := []struct {
		name       string
		predicate  Predicate
		identity   *Identity
		wantAllow  bool
		wantStatus int
	}{
		{"anonymous allowed when anonymous", RequireAnonymous, anonymous, true, 0},
		{"anonymous denies user", RequireAnonymous, user, false, http.StatusForbidden},
		{"anonymous denies admin", RequireAnonymous, admin, false, http.StatusForbidden},

		{"authenticated denies anonymous", RequireAuthenticated, anonymous, false, http.StatusUnauthorized},
		{"authenticated allows user", RequireAuthenticated, user, true, 0},
		{"authenticated allows admin", RequireAuthenticated, admin, true, 0},

		{"non-admin denies anonymous", RequireNonAdmin, anonymous, false, http.StatusUnauthorized},
		{"non-admin allows user", RequireNonAdmin, user, true, 0},
		{"non-admin denies admin", RequireNonAdmin, admin, false, http.StatusForbidden},

		{"admin denies anonymous", RequireAdmin, anonymous, false, http.StatusUnauthorized},
		{"admin denies user", RequireAdmin, user, false, http.StatusForbidden},
		{"admin allows admin", RequireAdmin, admin, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.predicate(tt.identity)
			assert.Equal(t, tt.wantAllow, d.Allowed)
			if !tt.wantAllow {
				assert.Equal(t, tt.wantStatus, d.Status)
				assert.NotEmpty(t, d.Message)
			}
		})
	}
}

// RequireNonAdmin and RequireAdmin must be exact complements for any
// authenticated identity.
func TestAdminPredicatesAreComplementary(t *testing.T) {
	for _, role := range []model.Role{model.RoleUser, model.RoleAdmin} {
		id := &Identity{ID: "x", Username: "x", Role: role}
		assert.NotEqual(t, RequireAdmin(id).Allowed, RequireNonAdmin(id).Allowed, "role %s", role)
	}
}

func TestDenialMessagesCarryNoDetail(t *testing.T) {
	d := RequireAdmin(&Identity{ID: "u1", Username: "alice", Role: model.RoleUser})
	assert.Equal(t, MsgForbidden, d.Message)
	assert.NotContains(t, d.Message, "admin")
	assert.NotContains(t, d.Message, "alice")
}
