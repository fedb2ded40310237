// ABOUTME: Operator (console user) store methods on SQLiteStore
// ABOUTME: Active operators referencing a department block its deactivation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateOperator inserts a new console user. Returns ErrDuplicateUsername
// when the username is taken.
func (s *SQLiteStore) CreateOperator(ctx context.Context, op *Operator) error {
	query := `
		INSERT INTO operators (id, username, password_hash, department_id, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		op.ID,
		op.Username,
		op.PasswordHash,
		nullable(op.DepartmentID),
		op.Active,
		formatTime(op.CreatedAt),
	)
	if err != nil {
		if isConstraintViolation(err) && strings.Contains(err.Error(), "operators.username") {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("inserting operator: %w", err)
	}

	s.logger.Debug("created operator", "id", op.ID, "username", op.Username)
	return nil
}

// GetOperatorByUsername returns an operator by username, or ErrNotFound
func (s *SQLiteStore) GetOperatorByUsername(ctx context.Context, username string) (*Operator, error) {
	query := `
		SELECT id, username, password_hash, department_id, active, created_at
		FROM operators WHERE username = ?
	`

	op, err := s.scanOperatorRow(s.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return op, err
}

// ListOperatorsByDepartment returns all operators referencing a department,
// active or not. The dependency guard filters on active itself.
func (s *SQLiteStore) ListOperatorsByDepartment(ctx context.Context, departmentID string) ([]*Operator, error) {
	query := `
		SELECT id, username, password_hash, department_id, active, created_at
		FROM operators WHERE department_id = ?
		ORDER BY username
	`

	rows, err := s.db.QueryContext(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("listing operators: %w", err)
	}
	defer rows.Close()

	operators := []*Operator{}
	for rows.Next() {
		op, err := s.scanOperatorRow(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operators: %w", err)
	}

	return operators, nil
}

func (s *SQLiteStore) scanOperatorRow(row rowScanner) (*Operator, error) {
	var op Operator
	var departmentID sql.NullString
	var createdAtStr string

	err := row.Scan(&op.ID, &op.Username, &op.PasswordHash, &departmentID, &op.Active, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning operator: %w", err)
	}

	op.DepartmentID = fromNullable(departmentID)

	if op.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}

	return &op, nil
}
