package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"oilshop/pos/domain"
)

// FindUserByUsername returns the operator including its password hash.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	err := s.withConn(ctx, "find user", func(conn *sqlx.Conn) error {
		err := conn.GetContext(ctx, &user, conn.Rebind(`SELECT id, username, password, role, created_at FROM users WHERE username = ?`), username)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	})
	return user, err
}

// CreateUser stores an operator whose password is already hashed.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error) {
	var id int64
	err := s.withConn(ctx, "create user", func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, conn.Rebind(`INSERT INTO users (username, password, role) VALUES (?, ?, ?) RETURNING id`),
			username, passwordHash, role).Scan(&id)
	})
	return id, err
}
