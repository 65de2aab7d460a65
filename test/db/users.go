/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	createUsersTable = "CREATE TABLE IF NOT EXISTS users (id SERIAL PRIMARY KEY, name VARCHAR(50))"
	insertUser       = "INSERT INTO users(name) VALUES ($1) RETURNING id"
	selectUserName   = "SELECT name FROM users WHERE id = $1"
	resetUsers       = "TRUNCATE users RESTART IDENTITY"

	// MaxNameLength is the width of users.name.
	MaxNameLength = 50
)

var ErrUserNotFound = errors.New("user not found")

// User is a row of the users table.
type User struct {
	ID   int
	Name string
}

// Querier is satisfied by both *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnsureUsersTable creates the users table if it doesn't already exist.
func EnsureUsersTable(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}

// InsertUser adds a user and returns the generated ID.
func InsertUser(ctx context.Context, q Querier, name string) (int, error) {
	var id int

	if err := q.QueryRow(ctx, insertUser, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting user %q: %w", name, err)
	}

	return id, nil
}

// UserName looks up a user's name by ID.
func UserName(ctx context.Context, q Querier, id int) (string, error) {
	var name string

	if err := q.QueryRow(ctx, selectUserName, id).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: id %d", ErrUserNotFound, id)
		}

		return "", fmt.Errorf("selecting user %d: %w", id, err)
	}

	return name, nil
}

// ResetUsers deletes all users and restarts ID generation from 1.
func ResetUsers(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, resetUsers); err != nil {
		return fmt.Errorf("resetting users table: %w", err)
	}

	return nil
}
