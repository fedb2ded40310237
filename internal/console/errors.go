// ABOUTME: Error types surfaced by the console services
// ABOUTME: Field-validation maps and count-bearing dependency blocks, never panics

package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helpdeskhq/agent-console/internal/depcheck"
)

// ValidationError carries per-field messages for inline display. It is a
// normal, recoverable outcome of a save attempt.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// BlockedError is returned when the dependency guard refuses a delete. The
// report carries the counts the operator needs to see, not just a boolean.
type BlockedError struct {
	Report depcheck.Report
}

func (e *BlockedError) Error() string {
	return e.Report.Reason()
}

// guardFailure wraps a lookup error from a pre-delete check. The guard fails
// closed: an unanswerable check refuses the delete.
func guardFailure(what string, err error) error {
	return fmt.Errorf("refusing delete, could not check %s: %w", what, err)
}
