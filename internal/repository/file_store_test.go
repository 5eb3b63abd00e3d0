package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelikov/user-auth-api/internal/model"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func testUser(username string, role model.Role) model.User {
	return model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefak",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestFileStore_AddAndFind(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	u := testUser("alice", model.RoleUser)
	require.NoError(t, s.Add(ctx, u))

	byID, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)
	assert.Equal(t, u.PasswordHash, byID.PasswordHash)
	assert.Equal(t, model.RoleUser, byID.Role)

	byName, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = s.FindByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFileStore_UsernameIsCaseSensitive(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, testUser("Alice", model.RoleUser)))
	_, err := s.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, s.Add(ctx, testUser("alice", model.RoleUser)))
}

func TestFileStore_DuplicateUsername(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, testUser("alice", model.RoleUser)))
	err := s.Add(ctx, testUser("alice", model.RoleUser))
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Exactly one record for the name survives a reload.
	reloaded, err := NewFileStore(s.path)
	require.NoError(t, err)
	count := 0
	for _, u := range reloaded.users {
		if u.Username == "alice" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	s, path := newTestFileStore(t)
	ctx := context.Background()
	u := testUser("carol", model.RoleAdmin)
	require.NoError(t, s.Add(ctx, u))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := reopened.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestFileStore_FileNeverHoldsPlaintextMarker(t *testing.T) {
	s, path := newTestFileStore(t)
	require.NoError(t, s.Add(context.Background(), model.User{
		ID: uuid.NewString(), Username: "dave",
		PasswordHash: "$2a$10$hashedvalue", Role: model.RoleUser,
		CreatedAt: time.Now().UTC(),
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "password_hash")
	assert.Contains(t, string(data), "$2a$10$hashedvalue")
}

func TestNewFileStore_MissingAndMalformed(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	_, err = s.FindByUsername(context.Background(), "anyone")
	assert.ErrorIs(t, err, ErrUserNotFound)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = NewFileStore(bad)
	assert.Error(t, err)
}

func TestFileStore_ConcurrentDistinctUsernames(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Add(ctx, testUser(fmt.Sprintf("user-%d", i), model.RoleUser))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "user-%d", i)
		_, err = s.FindByUsername(ctx, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
	}
}

func TestFileStore_ConcurrentSameUsername(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Add(ctx, testUser("contested", model.RoleUser))
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == ErrUsernameTaken:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}
