package storage

import (
	"context"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
)

// BuildFunc turns one user's stored credentials into a provider client. The
// backend behind it is fixed at startup by configuration.
type BuildFunc func(ctx context.Context, creds *models.StorageAuth) (Client, error)

// Factory builds a fresh storage client per call from the credentials on the
// requesting user's record. No client is cached or shared between users.
type Factory struct {
	dir   users.Directory
	build BuildFunc
}

func NewFactory(dir users.Directory, build BuildFunc) *Factory {
	return &Factory{dir: dir, build: build}
}

// ForUser fails with users.ErrNotFound when the user does not exist and with
// ErrNotLinked when no external storage credential is attached.
func (f *Factory) ForUser(ctx context.Context, userID string) (Client, error) {
	user, err := f.dir.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	creds := user.Credentials()
	if creds == nil {
		return nil, ErrNotLinked
	}

	return f.build(ctx, creds)
}
