package users

import (
	"context"
	"testing"

	"ck-services/core/database"

	"github.com/stretchr/testify/assert"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return NewStore(db)
}

func TestPasswordHashing(t *testing.T) {
	var user User
	assert.NoError(t, user.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, user.CheckPassword("s3cret"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.CheckPassword(""))
}

func TestUpsertCreatesAndRotates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Upsert(ctx, "admin", "first")
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, store.VerifyCredentials("admin", "first"))

	// Upserting an existing user rotates the password, not the identity
	rotated, err := store.Upsert(ctx, "admin", "second")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, rotated.ID)
	assert.True(t, store.VerifyCredentials("admin", "second"))
	assert.False(t, store.VerifyCredentials("admin", "first"))

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListOrdersByUsername(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, name := range []string{"zoe", "admin", "mara"} {
		_, err := store.Upsert(ctx, name, "pw")
		assert.NoError(t, err)
	}

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "admin", list[0].Username)
	assert.Equal(t, "mara", list[1].Username)
	assert.Equal(t, "zoe", list[2].Username)
}

func TestDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "admin", "pw")
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "admin"))
	assert.ErrorIs(t, store.Delete(ctx, "admin"), ErrUserNotFound)
	assert.False(t, store.VerifyCredentials("admin", "pw"))
}

func TestVerifyCredentialsUnknownUser(t *testing.T) {
	store := setupStore(t)
	assert.False(t, store.VerifyCredentials("ghost", "pw"))
}
