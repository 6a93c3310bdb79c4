package auth

import (
	"context"

	dErrors "regwise/pkg/domain-errors"
)

// Store errors shared by implementations.
var (
	ErrNotFound      = dErrors.New(dErrors.CodeNotFound, "User not found")
	ErrAlreadyExists = dErrors.New(dErrors.CodeBadRequest, "User already exists")
)

// Store persists user accounts.
type Store interface {
	// Create inserts a new user; ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, user User) error

	// FindByEmail resolves a user by email; ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID resolves a user by id; ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*User, error)
}
