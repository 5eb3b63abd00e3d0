// Package repository implements the durable user store behind the
// authentication pipeline. Sentinel errors defined here let handlers
// distinguish failure scenarios without inspecting backend-specific
// errors: ErrUsernameTaken maps to HTTP 409, ErrUserNotFound is turned
// into an anonymous identity (resolver) or a uniform 401 (login).
package repository

import "errors"

// ErrUsernameTaken is returned by Add when the username is already
// present in the store.
var ErrUsernameTaken = errors.New("username already taken")

// ErrUserNotFound is returned by the lookup operations when no record
// matches the given id or username.
var ErrUserNotFound = errors.New("user not found")
