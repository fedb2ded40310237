// ABOUTME: Pre-delete referential checks for agents and departments
// ABOUTME: Pure counting over caller-held snapshots; reports counts, not booleans

package depcheck

import (
	"fmt"

	"github.com/helpdeskhq/agent-console/internal/store"
)

// Report carries the blocking counts for a delete attempt. It is transient:
// built for one attempt, surfaced to the operator, then discarded.
type Report struct {
	BlockingUsers      int
	BlockingAgents     int
	BlockingContents   int
	BlockingCategories int
}

// Blocked reports whether any count prevents the delete.
func (r Report) Blocked() bool {
	return r.BlockingUsers > 0 || r.BlockingAgents > 0 ||
		r.BlockingContents > 0 || r.BlockingCategories > 0
}

// Reason renders the operator-facing blocking message. For departments,
// blocking users take priority: when both users and agents reference the
// department, only the user count is mentioned. Empty when nothing blocks.
func (r Report) Reason() string {
	switch {
	case r.BlockingUsers > 0:
		return fmt.Sprintf("no se puede eliminar: %d usuario(s) asignado(s) al departamento", r.BlockingUsers)
	case r.BlockingAgents > 0:
		return fmt.Sprintf("no se puede eliminar: %d agente(s) asignado(s) al departamento", r.BlockingAgents)
	case r.BlockingContents > 0 || r.BlockingCategories > 0:
		return fmt.Sprintf("no se puede eliminar: %d contenido(s) y %d categoría(s) asociados al agente",
			r.BlockingContents, r.BlockingCategories)
	default:
		return ""
	}
}

// AgentBlockers counts the records that prevent deleting an agent: every
// content item referencing it, and every category referencing it that is not
// itself deleted. Both counts are reported independently so the operator
// knows what to remove first.
func AgentBlockers(agentID string, contents []*store.Content, categories []*store.Category) Report {
	var report Report

	for _, c := range contents {
		if c.AgentID == agentID {
			report.BlockingContents++
		}
	}
	for _, c := range categories {
		if c.AgentID == agentID && !c.Deleted {
			report.BlockingCategories++
		}
	}

	return report
}

// DepartmentBlockers counts the records that prevent deactivating a
// department. Active operators referencing it are checked first; agents are
// only counted when no operator blocks, so the surfaced reason always names
// users when both exist.
func DepartmentBlockers(departmentID string, operators []*store.Operator, agents []*store.Agent) Report {
	var report Report

	for _, op := range operators {
		if op.DepartmentID == departmentID && op.Active {
			report.BlockingUsers++
		}
	}
	if report.BlockingUsers > 0 {
		return report
	}

	for _, a := range agents {
		if a.DepartmentID == departmentID && a.Active && !a.Deleted {
			report.BlockingAgents++
		}
	}

	return report
}
