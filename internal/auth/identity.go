// Package auth implements the authentication/authorization decision
// pipeline: resolving a bearer credential into an identity and deciding
// whether that identity may reach a route.
package auth

import (
	"context"
	"strings"

	"github.com/dmelikov/user-auth-api/internal/model"
	"github.com/dmelikov/user-auth-api/internal/repository"
	"github.com/dmelikov/user-auth-api/internal/utils"
)

const bearerPrefix = "Bearer "

// Identity is the resolved, store-verified requester of one request.
// A nil *Identity means anonymous. It is built fresh per request and
// never persisted.
type Identity struct {
	ID       string
	Username string
	Role     model.Role
}

// IsAdmin reports whether the identity is present and has the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == model.RoleAdmin
}

// Resolver turns a raw Authorization header into an Identity by decoding
// the token and cross-checking the subject against the user store.
type Resolver struct {
	Tokens *utils.TokenCodec
	Users  repository.UserStore
}

// Resolve never fails: every problem with the credential — absent
// header, wrong scheme, invalid or tampered token, or a valid token
// whose subject no longer exists in the store — degrades to anonymous
// (nil). Absence of identity is a normal outcome here, not an error;
// it is the authorization predicates that decide whether anonymous is
// acceptable for a given route.
func (r *Resolver) Resolve(ctx context.Context, header string) *Identity {
	if len(header) <= len(bearerPrefix) || !strings.HasPrefix(header, bearerPrefix) {
		return nil
	}
	raw := header[len(bearerPrefix):]

	claims, ok := r.Tokens.Verify(raw)
	if !ok {
		return nil
	}

	// A signed token for a since-deleted user must not grant access.
	if _, err := r.Users.FindByID(ctx, claims.Subject); err != nil {
		return nil
	}

	return &Identity{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}
}
