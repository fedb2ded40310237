// ABOUTME: Store interface and data types for agent-console persistence
// ABOUTME: Departments, agents, operators, and the records that can block deletes

package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/helpdeskhq/agent-console/internal/schedule"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateCode is returned when a department code is already in use
var ErrDuplicateCode = errors.New("department code already in use")

// ErrDepartmentTaken is returned when a department already has an active agent.
// The partial unique index on agents.department_id is the authoritative check;
// the client-side validation in internal/assignment is advisory only.
var ErrDepartmentTaken = errors.New("department already has an agent")

// ErrDuplicateUsername is returned when an operator username is already in use
var ErrDuplicateUsername = errors.New("username already in use")

// CodePattern constrains department codes: alphanumeric plus - and _, 3-50 chars
var CodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)

// Department name length bounds
const (
	DepartmentNameMin = 5
	DepartmentNameMax = 100
)

// Department is an organizational unit that may own exactly one active agent.
// Departments are never physically removed; deactivation is the only form of
// deletion.
type Department struct {
	ID          string
	Code        string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Agent is a configured virtual assistant tied to at most one department.
// DepartmentID is empty while unassigned and immutable once set. PromptText
// and Schedule hold the persisted forms produced by the prompt and schedule
// packages.
type Agent struct {
	ID            string
	Name          string
	SpecialtyArea string
	DepartmentID  string // empty = unassigned; stored as NULL
	Active        bool
	Deleted       bool
	PromptText    string
	Schedule      schedule.Sparse
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Operator is a console user. Operators referencing a department block its
// deactivation while they remain active.
type Operator struct {
	ID           string
	Username     string
	PasswordHash string
	DepartmentID string // empty = no department
	Active       bool
	CreatedAt    time.Time
}

// Content is a knowledge item authored for an agent. Any content referencing
// an agent blocks its deletion.
type Content struct {
	ID        string
	AgentID   string
	Title     string
	Body      string
	CreatedAt time.Time
}

// Category groups an agent's contents. Non-deleted categories referencing an
// agent block its deletion.
type Category struct {
	ID        string
	AgentID   string
	Name      string
	Deleted   bool
	CreatedAt time.Time
}

// DepartmentFilter narrows ListDepartments results. Nil fields match everything.
type DepartmentFilter struct {
	Active *bool
}

// AgentFilter narrows ListAgents results. Nil fields match everything.
type AgentFilter struct {
	Active       *bool
	Deleted      *bool
	DepartmentID string
}

// Store defines the persistence operations the console services depend on
type Store interface {
	// Departments (soft delete only)
	CreateDepartment(ctx context.Context, d *Department) error
	GetDepartment(ctx context.Context, id string) (*Department, error)
	GetDepartmentByCode(ctx context.Context, code string) (*Department, error)
	UpdateDepartment(ctx context.Context, d *Department) error
	DeactivateDepartment(ctx context.Context, id string) error
	ListDepartments(ctx context.Context, filter DepartmentFilter) ([]*Department, error)

	// Agents (hard delete, gated by the dependency guard upstream)
	CreateAgent(ctx context.Context, a *Agent) error
	GetAgent(ctx context.Context, id string) (*Agent, error)
	UpdateAgent(ctx context.Context, a *Agent) error
	DeleteAgent(ctx context.Context, id string) error
	ListAgents(ctx context.Context, filter AgentFilter) ([]*Agent, error)

	// Operators
	CreateOperator(ctx context.Context, op *Operator) error
	GetOperatorByUsername(ctx context.Context, username string) (*Operator, error)
	ListOperatorsByDepartment(ctx context.Context, departmentID string) ([]*Operator, error)

	// Referencing records consulted by the dependency guard
	CreateContent(ctx context.Context, c *Content) error
	ListContentsByAgent(ctx context.Context, agentID string) ([]*Content, error)
	CreateCategory(ctx context.Context, c *Category) error
	ListCategoriesByAgent(ctx context.Context, agentID string) ([]*Category, error)

	// Close releases any resources held by the store
	Close() error
}
