package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasklyst/backend/domain"
)

func TestSeededDirectory(t *testing.T) {
	ctx := context.Background()
	dir, err := NewSeededUserDirectory()
	require.NoError(t, err)

	user, err := dir.FindByEmail(ctx, "USER@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("password123")))

	byID, err := dir.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = dir.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestInsertAllocatesSequentialIDs(t *testing.T) {
	ctx := context.Background()
	dir, err := NewSeededUserDirectory()
	require.NoError(t, err)

	user := &domain.User{Email: "second@example.com", Name: "Second"}
	require.NoError(t, dir.Insert(ctx, user))
	assert.Equal(t, "2", user.ID)

	all, err := dir.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInsertRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	dir, err := NewSeededUserDirectory()
	require.NoError(t, err)

	err = dir.Insert(ctx, &domain.User{Email: "User@Example.com", Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	all, err := dir.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
