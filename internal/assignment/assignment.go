// ABOUTME: Client-side enforcement of the one-agent-per-department rule
// ABOUTME: Pure functions over a snapshot; the store's unique index is the real constraint

package assignment

import (
	"errors"

	"github.com/helpdeskhq/agent-console/internal/store"
)

// ErrDepartmentTaken is returned when the chosen department already has an
// active agent.
var ErrDepartmentTaken = errors.New("department already has an agent")

// ErrDepartmentLocked is returned when an edit tries to change an agent's
// department after it has been assigned.
var ErrDepartmentLocked = errors.New("department cannot be changed once assigned")

// AvailableDepartments computes which departments the editor may offer.
//
// When the agent being edited already has a department, the assignment is
// locked: the result is exactly that department (or empty if it no longer
// exists), never a choice. Otherwise every department not held by another
// active, non-deleted agent is selectable.
//
// The result is only as fresh as the snapshot it was computed from. A second
// actor grabbing a department concurrently is caught at save time by the
// store, not here.
func AvailableDepartments(departments []*store.Department, agents []*store.Agent, editing *store.Agent) []*store.Department {
	if editing != nil && editing.DepartmentID != "" {
		for _, d := range departments {
			if d.ID == editing.DepartmentID {
				return []*store.Department{d}
			}
		}
		return []*store.Department{}
	}

	taken := map[string]bool{}
	for _, a := range agents {
		if editing != nil && a.ID == editing.ID {
			continue
		}
		if a.Active && !a.Deleted && a.DepartmentID != "" {
			taken[a.DepartmentID] = true
		}
	}

	available := []*store.Department{}
	for _, d := range departments {
		if !taken[d.ID] {
			available = append(available, d)
		}
	}
	return available
}

// Validate checks a submitted department assignment against the snapshot.
//
// On create (editing == nil or not yet assigned), a department held by
// another non-deleted agent is rejected with ErrDepartmentTaken. On edit of
// an already-assigned agent, any department other than the persisted one is
// rejected with ErrDepartmentLocked. An empty submission is always accepted;
// unassigned agents are allowed.
func Validate(formDepartmentID string, editing *store.Agent, agents []*store.Agent) error {
	if editing != nil && editing.DepartmentID != "" {
		if formDepartmentID != editing.DepartmentID {
			return ErrDepartmentLocked
		}
		return nil
	}

	if formDepartmentID == "" {
		return nil
	}

	for _, a := range agents {
		if editing != nil && a.ID == editing.ID {
			continue
		}
		if a.DepartmentID == formDepartmentID && !a.Deleted {
			return ErrDepartmentTaken
		}
	}
	return nil
}
