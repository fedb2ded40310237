// Package console implements the consistency rules around agent and
// department management.
//
// # Services
//
// Two services wrap the store:
//
//   - AgentService: create/update/delete plus editor sessions. It renders
//     the storage forms (composed prompt text, sparse schedule) from the
//     authoring form and recovers the authoring form when an editor opens.
//   - DepartmentService: CRUD where delete means deactivate, gated by the
//     dependency guard.
//
// # Assignment rule
//
// A department holds at most one live agent, and an agent's department is
// immutable once set. The services validate this up front for friendly
// errors, but the store's unique index has the final word: a save-time
// ErrDepartmentTaken is folded back into the same field-level validation
// error the editor already knows how to display.
//
// # Deletes
//
// Deletes are guarded. The services count blocking references first and
// refuse with a *BlockedError carrying the counts; a lookup failure during
// the check also refuses the delete. Departments are deactivated in place,
// agents are removed for real.
//
// # Editor sessions
//
// Transition implements the small state machine editors move through:
// idle, editing prompt or schedule, confirming a delete, and the blocked
// notice after a refused delete. It is pure; callers hold the state.
package console
