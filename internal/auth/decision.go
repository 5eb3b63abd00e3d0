package auth

import (
	"net/http"

	"github.com/dmelikov/user-auth-api/internal/model"
)

// User-facing denial messages. They deliberately carry no detail about
// why access was denied beyond the status code.
const (
	MsgUnauthenticated = "Authentication Failed. Please provide valid credentials."
	MsgForbidden       = "You do not have permission to access this resource."
)

// Decision is the outcome of an authorization predicate.
type Decision struct {
	Allowed bool
	Status  int
	Message string
}

// Predicate is a pure decision function over an Identity. Predicates do
// no I/O, which keeps the full authorization table unit-testable.
type Predicate func(id *Identity) Decision

func allow() Decision { return Decision{Allowed: true} }

func deny(status int, msg string) Decision {
	return Decision{Status: status, Message: msg}
}

// RequireAnonymous allows only requests with no resolved identity.
// A logged-in caller is forbidden, not unauthenticated.
func RequireAnonymous(id *Identity) Decision {
	if id != nil {
		return deny(http.StatusForbidden, MsgForbidden)
	}
	return allow()
}

// RequireAuthenticated allows any present identity.
func RequireAuthenticated(id *Identity) Decision {
	if id == nil {
		return deny(http.StatusUnauthorized, MsgUnauthenticated)
	}
	return allow()
}

// RequireNonAdmin allows authenticated users that are not admins.
func RequireNonAdmin(id *Identity) Decision {
	if d := RequireAuthenticated(id); !d.Allowed {
		return d
	}
	if id.Role == model.RoleAdmin {
		return deny(http.StatusForbidden, MsgForbidden)
	}
	return allow()
}

// RequireAdmin allows authenticated admins only.
func RequireAdmin(id *Identity) Decision {
	if d := RequireAuthenticated(id); !d.Allowed {
		return d
	}
	if id.Role != model.RoleAdmin {
		return deny(http.StatusForbidden, MsgForbidden)
	}
	return allow()
}
