// Package queue defines message payloads exchanged over the message broker.
package queue

// Event names published to the auth.events queue.
const (
	EventUserRegistered = "user.registered"
	EventUserLogin      = "user.login"
)

// AuthEvent is published when a credential lifecycle operation succeeds.
// It contains enough information for downstream consumers to log or
// trigger analytics without querying the user store. It never carries
// credential material.
type AuthEvent struct {
	Event    string `json:"event"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	At       string `json:"at"`
}
