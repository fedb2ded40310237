// ABOUTME: DepartmentService handles department CRUD and the guarded soft delete
// ABOUTME: Deactivation is the only form of department deletion

package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helpdeskhq/agent-console/internal/depcheck"
	"github.com/helpdeskhq/agent-console/internal/store"
)

// DepartmentForm is the editor's department shape.
type DepartmentForm struct {
	Code        string
	Name        string
	Description string
}

// DepartmentService wires validation and the dependency guard around
// department persistence.
type DepartmentService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDepartmentService creates a DepartmentService.
func NewDepartmentService(s store.Store) *DepartmentService {
	return &DepartmentService{
		store:  s,
		logger: slog.Default().With("component", "console.departments"),
	}
}

// Create validates and persists a new department.
func (s *DepartmentService) Create(ctx context.Context, form DepartmentForm) (*store.Department, error) {
	if fields := validateDepartmentForm(form); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	department := &store.Department{
		ID:          uuid.NewString(),
		Code:        strings.TrimSpace(form.Code),
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateDepartment(ctx, department); err != nil {
		if errors.Is(err, store.ErrDuplicateCode) {
			return nil, &ValidationError{Fields: map[string]string{
				"code": "el código ya está en uso",
			}}
		}
		return nil, fmt.Errorf("creating department: %w", err)
	}

	s.logger.Info("created department", "id", department.ID, "code", department.Code)
	return department, nil
}

// Update validates and saves changes to an existing department.
func (s *DepartmentService) Update(ctx context.Context, id string, form DepartmentForm) (*store.Department, error) {
	existing, err := s.store.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields := validateDepartmentForm(form); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	existing.Code = strings.TrimSpace(form.Code)
	existing.Name = strings.TrimSpace(form.Name)
	existing.Description = strings.TrimSpace(form.Description)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateDepartment(ctx, existing); err != nil {
		if errors.Is(err, store.ErrDuplicateCode) {
			return nil, &ValidationError{Fields: map[string]string{
				"code": "el código ya está en uso",
			}}
		}
		return nil, fmt.Errorf("updating department: %w", err)
	}

	return existing, nil
}

// Deactivate soft-deletes a department after the dependency guard clears it.
// Active operators are checked first; agents only matter when no operator
// blocks. Any failed lookup refuses the delete.
func (s *DepartmentService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.store.GetDepartment(ctx, id); err != nil {
		return err
	}

	operators, err := s.store.ListOperatorsByDepartment(ctx, id)
	if err != nil {
		return guardFailure("operators", err)
	}
	agents, err := s.store.ListAgents(ctx, store.AgentFilter{DepartmentID: id})
	if err != nil {
		return guardFailure("agents", err)
	}

	report := depcheck.DepartmentBlockers(id, operators, agents)
	if report.Blocked() {
		s.logger.Info("deactivate blocked",
			"id", id,
			"users", report.BlockingUsers,
			"agents", report.BlockingAgents)
		return &BlockedError{Report: report}
	}

	if err := s.store.DeactivateDepartment(ctx, id); err != nil {
		return fmt.Errorf("deactivating department: %w", err)
	}

	s.logger.Info("deactivated department", "id", id)
	return nil
}

func validateDepartmentForm(form DepartmentForm) map[string]string {
	fields := map[string]string{}

	code := strings.TrimSpace(form.Code)
	if !store.CodePattern.MatchString(code) {
		fields["code"] = "el código debe tener de 3 a 50 caracteres alfanuméricos, guiones o guiones bajos"
	}

	name := strings.TrimSpace(form.Name)
	if len([]rune(name)) < store.DepartmentNameMin || len([]rune(name)) > store.DepartmentNameMax {
		fields["name"] = "el nombre debe tener entre 5 y 100 caracteres"
	}

	return fields
}
