// ABOUTME: Department store methods on SQLiteStore
// ABOUTME: Departments are soft-deleted only; DeactivateDepartment flips active off

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateDepartment inserts a new department. Returns ErrDuplicateCode when the
// code is already in use.
func (s *SQLiteStore) CreateDepartment(ctx context.Context, d *Department) error {
	query := `
		INSERT INTO departments (id, code, name, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		d.ID,
		d.Code,
		d.Name,
		d.Description,
		d.Active,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		if isConstraintViolation(err) && strings.Contains(err.Error(), "departments.code") {
			return ErrDuplicateCode
		}
		return fmt.Errorf("inserting department: %w", err)
	}

	s.logger.Debug("created department", "id", d.ID, "code", d.Code)
	return nil
}

// GetDepartment returns a department by id, or ErrNotFound
func (s *SQLiteStore) GetDepartment(ctx context.Context, id string) (*Department, error) {
	query := `
		SELECT id, code, name, description, active, created_at, updated_at
		FROM departments WHERE id = ?
	`
	return s.scanDepartment(s.db.QueryRowContext(ctx, query, id))
}

// GetDepartmentByCode returns a department by its unique code, or ErrNotFound
func (s *SQLiteStore) GetDepartmentByCode(ctx context.Context, code string) (*Department, error) {
	query := `
		SELECT id, code, name, description, active, created_at, updated_at
		FROM departments WHERE code = ?
	`
	return s.scanDepartment(s.db.QueryRowContext(ctx, query, code))
}

// UpdateDepartment updates name, description, and active state. The code is
// editable too; a collision maps to ErrDuplicateCode.
func (s *SQLiteStore) UpdateDepartment(ctx context.Context, d *Department) error {
	query := `
		UPDATE departments
		SET code = ?, name = ?, description = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		d.Code,
		d.Name,
		d.Description,
		d.Active,
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		if isConstraintViolation(err) && strings.Contains(err.Error(), "departments.code") {
			return ErrDuplicateCode
		}
		return fmt.Errorf("updating department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeactivateDepartment performs the soft delete: the row stays, active goes
// false. Callers must have consulted the dependency guard first.
func (s *SQLiteStore) DeactivateDepartment(ctx context.Context, id string) error {
	query := `UPDATE departments SET active = 0, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, formatTime(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("deactivating department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deactivate result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Info("deactivated department", "id", id)
	return nil
}

// ListDepartments returns departments matching the filter, ordered by code
func (s *SQLiteStore) ListDepartments(ctx context.Context, filter DepartmentFilter) ([]*Department, error) {
	query := `
		SELECT id, code, name, description, active, created_at, updated_at
		FROM departments
	`
	var args []any
	if filter.Active != nil {
		query += ` WHERE active = ?`
		args = append(args, *filter.Active)
	}
	query += ` ORDER BY code`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	departments := []*Department{}
	for rows.Next() {
		d, err := s.scanDepartmentRow(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating departments: %w", err)
	}

	return departments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanDepartment(row *sql.Row) (*Department, error) {
	d, err := s.scanDepartmentRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

func (s *SQLiteStore) scanDepartmentRow(row rowScanner) (*Department, error) {
	var d Department
	var createdAtStr, updatedAtStr string

	err := row.Scan(&d.ID, &d.Code, &d.Name, &d.Description, &d.Active, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning department: %w", err)
	}

	if d.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &d, nil
}
