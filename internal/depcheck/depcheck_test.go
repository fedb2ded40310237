// ABOUTME: Tests for pre-delete referential checks
// ABOUTME: Covers blocking counts, the user-priority rule, and reason rendering

package depcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helpdeskhq/agent-console/internal/store"
)

func TestAgentBlockers_NoReferences(t *testing.T) {
	report := AgentBlockers("agent-1", nil, nil)

	assert.False(t, report.Blocked())
	assert.Empty(t, report.Reason())
}

func TestAgentBlockers_CountsContents(t *testing.T) {
	contents := []*store.Content{
		{ID: "c-1", AgentID: "agent-1"},
		{ID: "c-2", AgentID: "agent-1"},
		{ID: "c-3", AgentID: "agent-2"},
	}

	report := AgentBlockers("agent-1", contents, nil)

	assert.Equal(t, 2, report.BlockingContents)
	assert.True(t, report.Blocked())
}

func TestAgentBlockers_SkipsDeletedCategories(t *testing.T) {
	categories := []*store.Category{
		{ID: "cat-1", AgentID: "agent-1"},
		{ID: "cat-2", AgentID: "agent-1", Deleted: true},
	}

	report := AgentBlockers("agent-1", nil, categories)

	assert.Equal(t, 1, report.BlockingCategories)
}

func TestAgentBlockers_ReportsBothCountsIndependently(t *testing.T) {
	contents := []*store.Content{{ID: "c-1", AgentID: "agent-1"}}
	categories := []*store.Category{
		{ID: "cat-1", AgentID: "agent-1"},
		{ID: "cat-2", AgentID: "agent-1"},
	}

	report := AgentBlockers("agent-1", contents, categories)

	assert.Equal(t, 1, report.BlockingContents)
	assert.Equal(t, 2, report.BlockingCategories)
	assert.Contains(t, report.Reason(), "1 contenido(s)")
	assert.Contains(t, report.Reason(), "2 categoría(s)")
}

func TestAgentBlockers_OnlyDeletedCategoriesDoNotBlock(t *testing.T) {
	categories := []*store.Category{
		{ID: "cat-1", AgentID: "agent-1", Deleted: true},
	}

	report := AgentBlockers("agent-1", nil, categories)

	assert.False(t, report.Blocked())
}

func TestDepartmentBlockers_NoReferences(t *testing.T) {
	report := DepartmentBlockers("dep-1", nil, nil)

	assert.False(t, report.Blocked())
}

func TestDepartmentBlockers_CountsActiveOperators(t *testing.T) {
	operators := []*store.Operator{
		{ID: "op-1", DepartmentID: "dep-1", Active: true},
		{ID: "op-2", DepartmentID: "dep-1", Active: false},
		{ID: "op-3", DepartmentID: "dep-2", Active: true},
	}

	report := DepartmentBlockers("dep-1", operators, nil)

	assert.Equal(t, 1, report.BlockingUsers)
	assert.True(t, report.Blocked())
}

func TestDepartmentBlockers_CountsActiveAgents(t *testing.T) {
	agents := []*store.Agent{
		{ID: "agent-1", DepartmentID: "dep-1", Active: true},
		{ID: "agent-2", DepartmentID: "dep-1", Active: false},
		{ID: "agent-3", DepartmentID: "dep-1", Active: true, Deleted: true},
	}

	report := DepartmentBlockers("dep-1", nil, agents)

	assert.Equal(t, 1, report.BlockingAgents)
}

func TestDepartmentBlockers_UsersTakePriorityOverAgents(t *testing.T) {
	operators := []*store.Operator{{ID: "op-1", DepartmentID: "dep-1", Active: true}}
	agents := []*store.Agent{{ID: "agent-1", DepartmentID: "dep-1", Active: true}}

	report := DepartmentBlockers("dep-1", operators, agents)

	assert.Equal(t, 1, report.BlockingUsers)
	assert.Zero(t, report.BlockingAgents, "agents are not separately reported when users block")
	assert.Contains(t, report.Reason(), "usuario")
	assert.NotContains(t, report.Reason(), "agente")
}

func TestDepartmentBlockers_AgentsReportedWhenNoUserBlocks(t *testing.T) {
	operators := []*store.Operator{{ID: "op-1", DepartmentID: "dep-1", Active: false}}
	agents := []*store.Agent{{ID: "agent-1", DepartmentID: "dep-1", Active: true}}

	report := DepartmentBlockers("dep-1", operators, agents)

	assert.Equal(t, 1, report.BlockingAgents)
	assert.Contains(t, report.Reason(), "agente")
}

func TestReport_ReasonEmptyWhenClear(t *testing.T) {
	assert.Empty(t, Report{}.Reason())
}
