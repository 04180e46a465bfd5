// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUserAlreadyExists indicates that a user with the given username already exists.
	// This is returned during registration when attempting to create a duplicate user.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// It deliberately does not distinguish an unknown user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
