package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/dmelikov/user-auth-api/internal/model"
)

// mysqlDupKey is the MySQL error number for duplicate-key violations.
// The UNIQUE index on users.username turns a concurrent duplicate
// registration into this error, which we surface as ErrUsernameTaken.
const mysqlDupKey = 1062

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id            CHAR(36)     NOT NULL PRIMARY KEY,
    username      VARCHAR(255) NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role          VARCHAR(16)  NOT NULL,
    created_at    DATETIME     NOT NULL,
    UNIQUE KEY uq_users_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`

// MySQLStore backs the user store with a users table. Uniqueness and
// write serialization are delegated to the database, so no additional
// locking is needed here.
type MySQLStore struct{ db *sql.DB }

// NewMySQLStore ensures the users table exists and returns the store.
func NewMySQLStore(ctx context.Context, db *sql.DB) (*MySQLStore, error) {
	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		return nil, err
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) FindByID(ctx context.Context, id string) (model.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE id=? LIMIT 1", id))
}

func (s *MySQLStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username=? LIMIT 1", username))
}

func (s *MySQLStore) Add(ctx context.Context, u model.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?,?,?,?,?)",
		u.ID, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupKey {
		return ErrUsernameTaken
	}
	return err
}

func (s *MySQLStore) Close() error { return s.db.Close() }

func (s *MySQLStore) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	return u, nil
}
