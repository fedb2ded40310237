// ABOUTME: Explicit state machine for an editor session
// ABOUTME: Pure transitions over named states; no rendering or I/O concerns

package console

import "fmt"

// SessionState names the editor session states.
type SessionState string

const (
	StateIdle                SessionState = "idle"
	StateEditingPrompt       SessionState = "editingPrompt"
	StateEditingSchedule     SessionState = "editingSchedule"
	StateConfirmingDelete    SessionState = "confirmingDelete"
	StateBlockedByDependency SessionState = "blockedByDependency"
)

// SessionEvent names the user or service actions that drive transitions.
type SessionEvent string

const (
	EventEditPrompt      SessionEvent = "editPrompt"
	EventEditSchedule    SessionEvent = "editSchedule"
	EventCloseEditor     SessionEvent = "closeEditor"
	EventRequestDelete   SessionEvent = "requestDelete"
	EventCancelDelete    SessionEvent = "cancelDelete"
	EventDeleteBlocked   SessionEvent = "deleteBlocked"
	EventDeleteConfirmed SessionEvent = "deleteConfirmed"
	EventAcknowledge     SessionEvent = "acknowledge"
)

// transitions maps each state to the events it accepts and their targets.
var transitions = map[SessionState]map[SessionEvent]SessionState{
	StateIdle: {
		EventEditPrompt:    StateEditingPrompt,
		EventEditSchedule:  StateEditingSchedule,
		EventRequestDelete: StateConfirmingDelete,
	},
	StateEditingPrompt: {
		EventCloseEditor:  StateIdle,
		EventEditSchedule: StateEditingSchedule,
	},
	StateEditingSchedule: {
		EventCloseEditor: StateIdle,
		EventEditPrompt:  StateEditingPrompt,
	},
	StateConfirmingDelete: {
		EventCancelDelete:    StateIdle,
		EventDeleteConfirmed: StateIdle,
		EventDeleteBlocked:   StateBlockedByDependency,
	},
	StateBlockedByDependency: {
		EventAcknowledge: StateIdle,
	},
}

// Transition applies an event to a state. Unknown states and events that the
// current state does not accept return an error and leave the caller's state
// unchanged.
func Transition(state SessionState, event SessionEvent) (SessionState, error) {
	accepted, ok := transitions[state]
	if !ok {
		return state, fmt.Errorf("unknown session state %q", state)
	}
	next, ok := accepted[event]
	if !ok {
		return state, fmt.Errorf("event %q not allowed in state %q", event, state)
	}
	return next, nil
}
