// ABOUTME: AgentService assembles, validates, and persists agent records
// ABOUTME: Prompt and schedule storage forms are produced here, never by callers

package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helpdeskhq/agent-console/internal/assignment"
	"github.com/helpdeskhq/agent-console/internal/depcheck"
	"github.com/helpdeskhq/agent-console/internal/prompt"
	"github.com/helpdeskhq/agent-console/internal/schedule"
	"github.com/helpdeskhq/agent-console/internal/store"
)

// AgentForm is the authoring shape the editor submits: structured prompt
// fields and the dense schedule, not the storage forms.
type AgentForm struct {
	Name          string
	SpecialtyArea string
	DepartmentID  string
	Active        bool
	Prompt        prompt.Spec
	Schedule      schedule.Dense
}

// AgentEditor is what an editor session loads: the agent (nil when creating),
// the recovered authoring form, and the departments the selector may offer.
type AgentEditor struct {
	Agent            *store.Agent
	Form             AgentForm
	Departments      []*store.Department
	DepartmentLocked bool
}

// AgentService wires the consistency rules around agent persistence.
type AgentService struct {
	store    store.Store
	composer prompt.Composer
	logger   *slog.Logger
}

// NewAgentService creates an AgentService.
func NewAgentService(s store.Store, composer prompt.Composer) *AgentService {
	return &AgentService{
		store:    s,
		composer: composer,
		logger:   slog.Default().With("component", "console.agents"),
	}
}

// Create validates the form, renders the storage forms, and persists a new
// agent. Field problems come back as *ValidationError; a department grabbed
// concurrently surfaces the same way, as a normal save-time conflict.
func (s *AgentService) Create(ctx context.Context, form AgentForm) (*store.Agent, error) {
	fields := s.validateFields(form)

	agents, err := s.store.ListAgents(ctx, store.AgentFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading agents: %w", err)
	}

	if err := s.validateDepartment(ctx, form.DepartmentID, nil, agents, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	agent := &store.Agent{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(form.Name),
		SpecialtyArea: strings.TrimSpace(form.SpecialtyArea),
		DepartmentID:  form.DepartmentID,
		Active:        form.Active,
		PromptText:    s.composer.Compose(strings.TrimSpace(form.Name), strings.TrimSpace(form.SpecialtyArea), form.Prompt),
		Schedule:      schedule.Encode(form.Schedule),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.CreateAgent(ctx, agent); err != nil {
		if errors.Is(err, store.ErrDepartmentTaken) {
			return nil, &ValidationError{Fields: map[string]string{
				"department": "el departamento ya tiene un agente asignado",
			}}
		}
		return nil, fmt.Errorf("creating agent: %w", err)
	}

	s.logger.Info("created agent", "id", agent.ID, "department_id", agent.DepartmentID)
	return agent, nil
}

// Update validates the form against the persisted agent and saves it. The
// department is immutable once assigned: a differing submission is rejected,
// and the stored value always wins.
func (s *AgentService) Update(ctx context.Context, id string, form AgentForm) (*store.Agent, error) {
	existing, err := s.store.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := s.validateFields(form)

	agents, err := s.store.ListAgents(ctx, store.AgentFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading agents: %w", err)
	}

	if err := s.validateDepartment(ctx, form.DepartmentID, existing, agents, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	departmentID := form.DepartmentID
	if existing.DepartmentID != "" {
		departmentID = existing.DepartmentID
	}

	updated := &store.Agent{
		ID:            existing.ID,
		Name:          strings.TrimSpace(form.Name),
		SpecialtyArea: strings.TrimSpace(form.SpecialtyArea),
		DepartmentID:  departmentID,
		Active:        form.Active,
		Deleted:       existing.Deleted,
		PromptText:    s.composer.Compose(strings.TrimSpace(form.Name), strings.TrimSpace(form.SpecialtyArea), form.Prompt),
		Schedule:      schedule.Encode(form.Schedule),
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := s.store.UpdateAgent(ctx, updated); err != nil {
		if errors.Is(err, store.ErrDepartmentTaken) {
			return nil, &ValidationError{Fields: map[string]string{
				"department": "el departamento ya tiene un agente asignado",
			}}
		}
		return nil, fmt.Errorf("updating agent: %w", err)
	}

	return updated, nil
}

// Delete hard-deletes an agent after the dependency guard clears it. A
// failed lookup refuses the delete; blocking references come back as
// *BlockedError with both counts.
func (s *AgentService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetAgent(ctx, id); err != nil {
		return err
	}

	contents, err := s.store.ListContentsByAgent(ctx, id)
	if err != nil {
		return guardFailure("contents", err)
	}
	categories, err := s.store.ListCategoriesByAgent(ctx, id)
	if err != nil {
		return guardFailure("categories", err)
	}

	report := depcheck.AgentBlockers(id, contents, categories)
	if report.Blocked() {
		s.logger.Info("delete blocked",
			"id", id,
			"contents", report.BlockingContents,
			"categories", report.BlockingCategories)
		return &BlockedError{Report: report}
	}

	if err := s.store.DeleteAgent(ctx, id); err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}

	s.logger.Info("deleted agent", "id", id)
	return nil
}

// NewEditor prepares an editor session for creating an agent: an empty form
// with defaults and the departments currently free.
func (s *AgentService) NewEditor(ctx context.Context) (*AgentEditor, error) {
	departments, agents, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &AgentEditor{
		Form: AgentForm{
			Active:   true,
			Prompt:   prompt.Spec{Tone: prompt.DefaultTone},
			Schedule: schedule.Empty(),
		},
		Departments: assignment.AvailableDepartments(departments, agents, nil),
	}, nil
}

// Editor loads an existing agent back into authoring form: the prompt fields
// are re-derived from the stored text and the schedule expanded to its dense
// form. With a non-empty department the selector is locked to it.
func (s *AgentService) Editor(ctx context.Context, id string) (*AgentEditor, error) {
	agent, err := s.store.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	departments, agents, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &AgentEditor{
		Agent: agent,
		Form: AgentForm{
			Name:          agent.Name,
			SpecialtyArea: agent.SpecialtyArea,
			DepartmentID:  agent.DepartmentID,
			Active:        agent.Active,
			Prompt:        prompt.Parse(agent.PromptText),
			Schedule:      schedule.Decode(agent.Schedule),
		},
		Departments:      assignment.AvailableDepartments(departments, agents, agent),
		DepartmentLocked: agent.DepartmentID != "",
	}, nil
}

// Preview renders the prompt text a form would produce, without saving.
func (s *AgentService) Preview(form AgentForm) string {
	return s.composer.Compose(strings.TrimSpace(form.Name), strings.TrimSpace(form.SpecialtyArea), form.Prompt)
}

func (s *AgentService) loadSnapshot(ctx context.Context) ([]*store.Department, []*store.Agent, error) {
	active := true
	departments, err := s.store.ListDepartments(ctx, store.DepartmentFilter{Active: &active})
	if err != nil {
		return nil, nil, fmt.Errorf("loading departments: %w", err)
	}
	agents, err := s.store.ListAgents(ctx, store.AgentFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("loading agents: %w", err)
	}
	return departments, agents, nil
}

func (s *AgentService) validateFields(form AgentForm) map[string]string {
	fields := prompt.ValidateSpec(form.Prompt)
	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = "el nombre es obligatorio"
	}
	return fields
}

// validateDepartment checks existence and the assignment invariant, folding
// violations into the field map under the department key.
func (s *AgentService) validateDepartment(ctx context.Context, departmentID string, editing *store.Agent, agents []*store.Agent, fields map[string]string) error {
	if departmentID != "" && (editing == nil || editing.DepartmentID == "") {
		if _, err := s.store.GetDepartment(ctx, departmentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fields["department"] = "departamento no encontrado"
				return nil
			}
			return fmt.Errorf("loading department: %w", err)
		}
	}

	switch err := assignment.Validate(departmentID, editing, agents); {
	case errors.Is(err, assignment.ErrDepartmentTaken):
		fields["department"] = "el departamento ya tiene un agente asignado"
	case errors.Is(err, assignment.ErrDepartmentLocked):
		fields["department"] = "el departamento no se puede cambiar una vez asignado"
	}
	return nil
}
