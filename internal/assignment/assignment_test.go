// ABOUTME: Tests for the one-agent-per-department assignment rules
// ABOUTME: Covers locked departments, taken-department filtering, and validation errors

package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/agent-console/internal/store"
)

func dept(id, code string) *store.Department {
	return &store.Department{ID: id, Code: code, Name: "Departamento " + code, Active: true}
}

func agent(id, departmentID string) *store.Agent {
	return &store.Agent{ID: id, Name: "Agente " + id, DepartmentID: departmentID, Active: true}
}

func TestAvailableDepartments_ExcludesTaken(t *testing.T) {
	departments := []*store.Department{dept("dep-1", "finanzas"), dept("dep-2", "sistemas")}
	agents := []*store.Agent{agent("agent-1", "dep-1")}

	available := AvailableDepartments(departments, agents, nil)

	require.Len(t, available, 1)
	assert.Equal(t, "dep-2", available[0].ID)
}

func TestAvailableDepartments_IgnoresInactiveHolder(t *testing.T) {
	departments := []*store.Department{dept("dep-1", "finanzas")}
	holder := agent("agent-1", "dep-1")
	holder.Active = false

	available := AvailableDepartments(departments, []*store.Agent{holder}, nil)

	require.Len(t, available, 1, "inactive agents do not occupy a department")
}

func TestAvailableDepartments_IgnoresDeletedHolder(t *testing.T) {
	departments := []*store.Department{dept("dep-1", "finanzas")}
	holder := agent("agent-1", "dep-1")
	holder.Deleted = true

	available := AvailableDepartments(departments, []*store.Agent{holder}, nil)

	require.Len(t, available, 1)
}

func TestAvailableDepartments_EditingLockedToOwnDepartment(t *testing.T) {
	departments := []*store.Department{dept("dep-1", "finanzas"), dept("dep-2", "sistemas")}
	editing := agent("agent-1", "dep-1")
	agents := []*store.Agent{editing}

	available := AvailableDepartments(departments, agents, editing)

	require.Len(t, available, 1, "assigned agent sees exactly its own department")
	assert.Equal(t, "dep-1", available[0].ID)
}

func TestAvailableDepartments_EditingLockedButDepartmentGone(t *testing.T) {
	departments := []*store.Department{dept("dep-2", "sistemas")}
	editing := agent("agent-1", "dep-1")

	available := AvailableDepartments(departments, []*store.Agent{editing}, editing)

	assert.Empty(t, available)
}

func TestAvailableDepartments_EditingUnassignedExcludesSelf(t *testing.T) {
	departments := []*store.Department{dept("dep-1", "finanzas"), dept("dep-2", "sistemas")}
	editing := agent("agent-1", "")
	other := agent("agent-2", "dep-2")

	available := AvailableDepartments(departments, []*store.Agent{editing, other}, editing)

	require.Len(t, available, 1)
	assert.Equal(t, "dep-1", available[0].ID)
}

func TestAvailableDepartments_NeverIncludesHeldDepartment(t *testing.T) {
	departments := []*store.Department{dept("dep-1", "finanzas"), dept("dep-2", "sistemas"), dept("dep-3", "legal")}
	agents := []*store.Agent{agent("agent-1", "dep-1"), agent("agent-2", "dep-3")}

	available := AvailableDepartments(departments, agents, nil)

	for _, d := range available {
		for _, a := range agents {
			assert.NotEqual(t, a.DepartmentID, d.ID)
		}
	}
}

func TestValidate_CreateOnFreeDepartment(t *testing.T) {
	agents := []*store.Agent{agent("agent-1", "dep-1")}

	assert.NoError(t, Validate("dep-2", nil, agents))
}

func TestValidate_CreateOnTakenDepartment(t *testing.T) {
	agents := []*store.Agent{agent("agent-1", "dep-1")}

	assert.ErrorIs(t, Validate("dep-1", nil, agents), ErrDepartmentTaken)
}

func TestValidate_CreateOnDepartmentHeldByDeletedAgent(t *testing.T) {
	holder := agent("agent-1", "dep-1")
	holder.Deleted = true

	assert.NoError(t, Validate("dep-1", nil, []*store.Agent{holder}),
		"deleted agents do not block a new assignment")
}

func TestValidate_CreateUnassigned(t *testing.T) {
	assert.NoError(t, Validate("", nil, nil))
}

func TestValidate_EditKeepingDepartment(t *testing.T) {
	editing := agent("agent-1", "dep-1")

	assert.NoError(t, Validate("dep-1", editing, []*store.Agent{editing}))
}

func TestValidate_EditChangingDepartment(t *testing.T) {
	editing := agent("agent-1", "dep-1")

	assert.ErrorIs(t, Validate("dep-2", editing, []*store.Agent{editing}), ErrDepartmentLocked)
	assert.ErrorIs(t, Validate("", editing, []*store.Agent{editing}), ErrDepartmentLocked,
		"clearing the assignment is also a change")
}

func TestValidate_EditUnassignedAgentPicksFreeDepartment(t *testing.T) {
	editing := agent("agent-1", "")
	other := agent("agent-2", "dep-2")

	assert.NoError(t, Validate("dep-1", editing, []*store.Agent{editing, other}))
	assert.ErrorIs(t, Validate("dep-2", editing, []*store.Agent{editing, other}), ErrDepartmentTaken)
}
