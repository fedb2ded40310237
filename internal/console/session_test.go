// ABOUTME: Tests for the editor session state machine
// ABOUTME: Covers allowed transitions and rejection of everything else

package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_EditFlow(t *testing.T) {
	state, err := Transition(StateIdle, EventEditPrompt)
	require.NoError(t, err)
	assert.Equal(t, StateEditingPrompt, state)

	state, err = Transition(state, EventEditSchedule)
	require.NoError(t, err)
	assert.Equal(t, StateEditingSchedule, state)

	state, err = Transition(state, EventCloseEditor)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)
}

func TestTransition_DeleteConfirmed(t *testing.T) {
	state, err := Transition(StateIdle, EventRequestDelete)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmingDelete, state)

	state, err = Transition(state, EventDeleteConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)
}

func TestTransition_DeleteBlocked(t *testing.T) {
	state, err := Transition(StateConfirmingDelete, EventDeleteBlocked)
	require.NoError(t, err)
	assert.Equal(t, StateBlockedByDependency, state)

	state, err = Transition(state, EventAcknowledge)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)
}

func TestTransition_CancelDelete(t *testing.T) {
	state, err := Transition(StateConfirmingDelete, EventCancelDelete)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)
}

func TestTransition_RejectsInvalidEvent(t *testing.T) {
	state, err := Transition(StateEditingPrompt, EventRequestDelete)
	require.Error(t, err, "deleting is not reachable from the prompt editor")
	assert.Equal(t, StateEditingPrompt, state, "state is unchanged on rejection")
}

func TestTransition_RejectsUnknownState(t *testing.T) {
	_, err := Transition(SessionState("limbo"), EventAcknowledge)
	assert.Error(t, err)
}

func TestTransition_BlockedOnlyAcknowledges(t *testing.T) {
	for _, event := range []SessionEvent{EventEditPrompt, EventEditSchedule, EventRequestDelete, EventDeleteConfirmed} {
		_, err := Transition(StateBlockedByDependency, event)
		assert.Error(t, err, string(event))
	}
}
