package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmelikov/user-auth-api/internal/model"
)

// fileUser is the on-disk shape of a user record. It exists separately
// from model.User because the model deliberately refuses to serialize
// the password hash, while the store has to.
type fileUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileStore keeps all user records in a single JSON file. Reads are
// served from memory; every Add rewrites the file before returning.
// The mutex spans the whole check-append-persist sequence so that two
// concurrent registrations can never both pass the uniqueness check.
type FileStore struct {
	path  string
	mu    sync.RWMutex
	users []fileUser
}

// NewFileStore loads the user file at path. A missing file is treated
// as an empty store; a malformed file is a startup error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read user file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.users); err != nil {
			return nil, fmt.Errorf("parse user file %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *FileStore) FindByID(ctx context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return toModel(u), nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *FileStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return toModel(u), nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// Add checks uniqueness, appends the record and persists the file, all
// under the write lock. If persisting fails the in-memory append is
// rolled back so the store and the file stay in sync.
func (s *FileStore) Add(ctx context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	s.users = append(s.users, fileUser{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	})
	if err := s.save(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return fmt.Errorf("persist user file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// save writes the full record list through a temp file and rename so a
// crash mid-write cannot truncate the store.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func toModel(u fileUser) model.User {
	return model.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         model.Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}
