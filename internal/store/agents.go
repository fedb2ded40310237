// ABOUTME: Agent store methods on SQLiteStore
// ABOUTME: Hard delete plus the partial unique index enforcing one agent per department

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/helpdeskhq/agent-console/internal/schedule"
)

// CreateAgent inserts a new agent. A conflicting department assignment maps
// to ErrDepartmentTaken via the partial unique index, which is how a race
// between two concurrent creations surfaces as a normal save-time conflict.
func (s *SQLiteStore) CreateAgent(ctx context.Context, a *Agent) error {
	scheduleJSON, err := schedule.MarshalSparse(a.Schedule)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO agents (id, name, specialty_area, department_id, active, deleted,
			prompt_text, schedule, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.SpecialtyArea,
		nullable(a.DepartmentID),
		a.Active,
		a.Deleted,
		a.PromptText,
		string(scheduleJSON),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		if isConstraintViolation(err) && strings.Contains(err.Error(), "agents.department_id") {
			return ErrDepartmentTaken
		}
		return fmt.Errorf("inserting agent: %w", err)
	}

	s.logger.Debug("created agent", "id", a.ID, "department_id", a.DepartmentID)
	return nil
}

// GetAgent returns an agent by id, or ErrNotFound
func (s *SQLiteStore) GetAgent(ctx context.Context, id string) (*Agent, error) {
	query := `
		SELECT id, name, specialty_area, department_id, active, deleted,
			prompt_text, schedule, created_at, updated_at
		FROM agents WHERE id = ?
	`

	a, err := s.scanAgentRow(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// UpdateAgent updates an agent's mutable fields. The department assignment is
// written as-is; the service layer enforces its immutability, and the unique
// index still catches a conflicting reassignment.
func (s *SQLiteStore) UpdateAgent(ctx context.Context, a *Agent) error {
	scheduleJSON, err := schedule.MarshalSparse(a.Schedule)
	if err != nil {
		return err
	}

	query := `
		UPDATE agents
		SET name = ?, specialty_area = ?, department_id = ?, active = ?, deleted = ?,
			prompt_text = ?, schedule = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		a.Name,
		a.SpecialtyArea,
		nullable(a.DepartmentID),
		a.Active,
		a.Deleted,
		a.PromptText,
		string(scheduleJSON),
		formatTime(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		if isConstraintViolation(err) && strings.Contains(err.Error(), "agents.department_id") {
			return ErrDepartmentTaken
		}
		return fmt.Errorf("updating agent: %w", err)
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

// DeleteAgent removes the agent row permanently. This is the one hard,
// irreversible delete in the system; the dependency guard must have cleared
// it first.
func (s *SQLiteStore) DeleteAgent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted agent", "id", id)
	return nil
}

// ListAgents returns agents matching the filter, ordered by name
func (s *SQLiteStore) ListAgents(ctx context.Context, filter AgentFilter) ([]*Agent, error) {
	query := `
		SELECT id, name, specialty_area, department_id, active, deleted,
			prompt_text, schedule, created_at, updated_at
		FROM agents
	`
	var conditions []string
	var args []any

	if filter.Active != nil {
		conditions = append(conditions, "active = ?")
		args = append(args, *filter.Active)
	}
	if filter.Deleted != nil {
		conditions = append(conditions, "deleted = ?")
		args = append(args, *filter.Deleted)
	}
	if filter.DepartmentID != "" {
		conditions = append(conditions, "department_id = ?")
		args = append(args, filter.DepartmentID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	agents := []*Agent{}
	for rows.Next() {
		a, err := s.scanAgentRow(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agents: %w", err)
	}

	return agents, nil
}

func (s *SQLiteStore) scanAgentRow(row rowScanner) (*Agent, error) {
	var a Agent
	var departmentID sql.NullString
	var scheduleJSON string
	var createdAtStr, updatedAtStr string

	err := row.Scan(&a.ID, &a.Name, &a.SpecialtyArea, &departmentID, &a.Active, &a.Deleted,
		&a.PromptText, &scheduleJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning agent: %w", err)
	}

	a.DepartmentID = fromNullable(departmentID)

	if a.Schedule, err = schedule.UnmarshalSparse([]byte(scheduleJSON)); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &a, nil
}
