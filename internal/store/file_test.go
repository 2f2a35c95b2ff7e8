package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminhub/console/internal/models"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func testUser() *models.UserInfo {
	return &models.UserInfo{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      models.UserRoleUser,
		Status:    models.UserStatusPending,
		CreatedAt: "2025-01-02T03:04:05Z",
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	require.NoError(t, s.Save(ctx, "abc", testUser()))

	token, user := s.Load(ctx)
	assert.Equal(t, "abc", token)
	require.NotNil(t, user)
	assert.Equal(t, testUser(), user)
}

func TestFileStoreEmpty(t *testing.T) {
	s := newFileStore(t)

	token, user := s.Load(context.Background())
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestFileStoreCorruptUserDiscarded(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, s.Save(ctx, "abc", testUser()))

	// Scribble over the user entry; the token entry stays intact.
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, userFile), []byte("{not json"), 0o600))

	token, user := s.Load(ctx)
	assert.Equal(t, "abc", token)
	assert.Nil(t, user)

	// The corrupt entry is gone for good.
	_, err := os.Stat(filepath.Join(s.dir, userFile))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreClearIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, s.Save(ctx, "abc", testUser()))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	token, user := s.Load(ctx)
	assert.Empty(t, token)
	assert.Nil(t, user)
}
