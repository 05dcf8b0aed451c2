// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the credential store.
type UserRepository interface {
	// FindByUsername returns ErrUserNotFound when the username is unknown.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user and fills in its ID and timestamps.
	// A duplicate username yields domainerrors.ErrUsernameTaken.
	Create(ctx context.Context, user *entity.User) error
}
