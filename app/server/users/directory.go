// Package users is the sole source of user records, including the per-user
// external-storage credentials every storage operation depends on.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Patch carries a partial update: only non-nil fields mutate the record.
type Patch struct {
	Name     *string
	Email    *string
	Password *string // raw; re-hashed before persisting
	Storage  *models.StorageAuth
}

// NormalizeEmail puts an address in the canonical stored form. Every
// Directory implementation stores and looks up emails in this form, so
// uniqueness and login are case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Directory interface {
	// Create hashes rawPassword and persists a new user. Fails with
	// ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, name, email, rawPassword string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, patch *Patch) error
}
