package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

// GetOrCreateUser looks up a user by name, creating one on first
// reference. An email supplied for an existing user is ignored; user
// records are not mutated here.
func (s *SQLiteStorage) GetOrCreateUser(ctx context.Context, name, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		user      model.User
		userEmail sql.NullString
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, email FROM users WHERE name = ?`, name,
	).Scan(&user.ID, &user.Name, &userEmail)

	switch {
	case err == nil:
		user.Email = userEmail.String
		return &user, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, email) VALUES (?, ?)`, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user: %w", err)
	}

	slog.Debug("created user", "id", id, "name", name)
	return &model.User{ID: id, Name: name, Email: email}, nil
}

// GetOrCreateGroup looks up a group by name, creating one on first
// reference.
func (s *SQLiteStorage) GetOrCreateGroup(ctx context.Context, name string) (*model.Group, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var group model.Group
	err = tx.QueryRowContext(ctx,
		`SELECT id, name FROM groups WHERE name = ?`, name,
	).Scan(&group.ID, &group.Name)

	switch {
	case err == nil:
		return &group, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to query group: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO groups (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get group id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group: %w", err)
	}

	slog.Debug("created group", "id", id, "name", name)
	return &model.Group{ID: id, Name: name}, nil
}

// AddGroupMember links a user to a group. Adding an existing member is
// a no-op; the (user, group) pair is unique.
func (s *SQLiteStorage) AddGroupMember(ctx context.Context, userID, groupID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(userID, "userID"); err != nil {
		return err
	}
	if err := validateID(groupID, "groupID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO group_members (user_id, group_id) VALUES (?, ?)`,
		userID, groupID)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	return nil
}
