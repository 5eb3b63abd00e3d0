package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmelikov/user-auth-api/internal/model"
)

// Key layout: one hash per user under user:<id>, plus a username:<name>
// index pointing at the id. The index is written with SETNX, which makes
// username uniqueness atomic even across concurrent registrations.
const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "username:"
)

// RedisStore backs the user store with Redis.
type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) FindByID(ctx context.Context, id string) (model.User, error) {
	vals, err := s.rdb.HGetAll(ctx, userKeyPrefix+id).Result()
	if err != nil {
		return model.User{}, err
	}
	if len(vals) == 0 {
		return model.User{}, ErrUserNotFound
	}
	return userFromHash(id, vals)
}

func (s *RedisStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	id, err := s.rdb.Get(ctx, usernameKeyPrefix+username).Result()
	if errors.Is(err, redis.Nil) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return s.FindByID(ctx, id)
}

func (s *RedisStore) Add(ctx context.Context, u model.User) error {
	// Claim the username first; exactly one concurrent writer wins.
	ok, err := s.rdb.SetNX(ctx, usernameKeyPrefix+u.Username, u.ID, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUsernameTaken
	}
	err = s.rdb.HSet(ctx, userKeyPrefix+u.ID, map[string]interface{}{
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"role":          string(u.Role),
		"created_at":    u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		// Release the claimed username so the registration can be retried.
		_ = s.rdb.Del(ctx, usernameKeyPrefix+u.Username).Err()
		return err
	}
	return nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }

func userFromHash(id string, vals map[string]string) (model.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		createdAt = time.Time{}
	}
	return model.User{
		ID:           id,
		Username:     vals["username"],
		PasswordHash: vals["password_hash"],
		Role:         model.Role(vals["role"]),
		CreatedAt:    createdAt,
	}, nil
}
