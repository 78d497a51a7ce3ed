package users

import (
	"context"
	"testing"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMemory_CreateHashesPassword(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	user, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", user.Password, "raw password must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))
	assert.NotEmpty(t, user.ID)
}

func TestMemory_CreateDuplicateEmail(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	_, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = dir.Create(context.Background(), "Another Ana", "ana@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)

	// case-insensitive: email is a login key, not a display string
	_, err = dir.Create(context.Background(), "Ana Caps", "ANA@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemory_FindByID(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	created, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	found, err := dir.FindByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)

	_, err = dir.FindByID(context.Background(), "00000000-0000-0000-0000-000000000001")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = dir.FindByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_FindByEmail(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	_, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	found, err := dir.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)

	_, err = dir.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_EmailNormalized(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	created, err := dir.Create(context.Background(), "Ana", " ANA@Example.COM ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", created.Email, "emails are stored in canonical form")

	found, err := dir.FindByEmail(context.Background(), "Ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// patched emails go through the same normalization
	patched := "NEW@Example.com"
	require.NoError(t, dir.Update(context.Background(), created.ID.String(), &Patch{Email: &patched}))

	updated, err := dir.FindByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestMemory_UpdatePartial(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	created, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)
	id := created.ID.String()

	name := "Ana Maria"
	require.NoError(t, dir.Update(context.Background(), id, &Patch{Name: &name}))

	updated, err := dir.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "ana@example.com", updated.Email, "unpatched fields stay put")
	assert.Equal(t, created.Password, updated.Password)
}

func TestMemory_UpdateAttachesStorageCredentials(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	created, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)
	require.Nil(t, created.Credentials(), "fresh account has no linked storage")

	id := created.ID.String()
	require.NoError(t, dir.Update(context.Background(), id, &Patch{
		Storage: &models.StorageAuth{
			ClientID:     "cid",
			ClientSecret: "csecret",
			AccessToken:  "atoken",
			RefreshToken: "rtoken",
		},
	}))

	updated, err := dir.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, updated.Linked())

	creds := updated.Credentials()
	require.NotNil(t, creds)
	assert.Equal(t, "cid", creds.ClientID)
	assert.Equal(t, "rtoken", creds.RefreshToken)
}

func TestMemory_UpdateRehashesPassword(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	created, err := dir.Create(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	newPassword := "new-secret"
	require.NoError(t, dir.Update(context.Background(), created.ID.String(), &Patch{Password: &newPassword}))

	updated, err := dir.FindByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, "new-secret", updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-secret")))
}

func TestMemory_UpdateUnknownUser(t *testing.T) {
	dir := NewMemory(bcrypt.MinCost)

	name := "Ghost"
	err := dir.Update(context.Background(), "00000000-0000-0000-0000-000000000001", &Patch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}
