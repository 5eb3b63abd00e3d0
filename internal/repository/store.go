package repository

import (
	"context"

	"github.com/dmelikov/user-auth-api/internal/model"
)

// UserStore is the abstract repository of user records. Implementations
// must keep usernames unique under concurrent Add calls: two concurrent
// registrations of the same username result in exactly one success and
// one ErrUsernameTaken. A successful Add is durable before it returns,
// so a login issued afterwards always observes the new record.
type UserStore interface {
	// FindByID returns the record with the given id or ErrUserNotFound.
	FindByID(ctx context.Context, id string) (model.User, error)
	// FindByUsername returns the record with the given username
	// (case-sensitive) or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (model.User, error)
	// Add appends a new record. It fails with ErrUsernameTaken when the
	// username already exists; any other error is a persistence failure.
	Add(ctx context.Context, u model.User) error
	// Close releases backend resources.
	Close() error
}
