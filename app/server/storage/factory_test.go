package storage

import (
	"context"
	"testing"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeClient struct {
	Client
	creds *models.StorageAuth
}

func TestFactory_ForUser(t *testing.T) {
	dir := users.NewMemory(bcrypt.MinCost)

	var built int
	factory := NewFactory(dir, func(_ context.Context, creds *models.StorageAuth) (Client, error) {
		built++
		return &fakeClient{creds: creds}, nil
	})

	linked, err := dir.Create(context.Background(), "Linked", "linked@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, dir.Update(context.Background(), linked.ID.String(), &users.Patch{
		Storage: &models.StorageAuth{
			ClientID:     "cid",
			ClientSecret: "csecret",
			AccessToken:  "atoken",
			RefreshToken: "rtoken",
		},
	}))

	unlinked, err := dir.Create(context.Background(), "Unlinked", "unlinked@example.com", "pw")
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		_, err := factory.ForUser(context.Background(), "00000000-0000-0000-0000-000000000001")
		require.ErrorIs(t, err, users.ErrNotFound)
	})

	t.Run("user without credentials", func(t *testing.T) {
		_, err := factory.ForUser(context.Background(), unlinked.ID.String())
		require.ErrorIs(t, err, ErrNotLinked)
		assert.Zero(t, built, "no client may be built without credentials")
	})

	t.Run("linked user gets a fresh client per call", func(t *testing.T) {
		first, err := factory.ForUser(context.Background(), linked.ID.String())
		require.NoError(t, err)
		second, err := factory.ForUser(context.Background(), linked.ID.String())
		require.NoError(t, err)

		assert.Equal(t, 2, built)
		assert.NotSame(t, first, second)

		fc := first.(*fakeClient)
		assert.Equal(t, "cid", fc.creds.ClientID)
		assert.Equal(t, "atoken", fc.creds.AccessToken)
	})
}
