// Package store provides persistent storage for the console using SQLite.
//
// # Data Models
//
// Core models:
//
//   - Department: Organizational unit, soft-deleted via Active
//   - Agent: Configured assistant tied to at most one department
//   - Operator: Console user; active operators block department deactivation
//   - Content: Knowledge item referencing an agent
//   - Category: Content grouping referencing an agent, soft-deletable
//
// Agents persist two rendered forms produced elsewhere: PromptText (the
// composed free-text prompt) and Schedule (the sparse weekly availability).
// The store serializes the schedule as JSON and parses it back on read.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// A partial unique index enforces the one-agent-per-department rule at the
// database level:
//
//	CREATE UNIQUE INDEX idx_agents_department ON agents(department_id)
//	WHERE active = 1 AND deleted = 0 AND department_id IS NOT NULL;
//
// This is the authoritative check. Whatever the services validated earlier,
// a save that would give a department a second live agent fails here with
// ErrDepartmentTaken.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entity does not exist
//   - ErrDuplicateCode: Department code already in use
//   - ErrDepartmentTaken: Department already has a live agent
//   - ErrDuplicateUsername: Operator username already in use
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests:
//
//	store := store.NewMockStore()
//
// The mock mirrors the partial unique index behavior and supports per-method
// error injection through FailWith. Use NewSQLiteStore with a temp file for
// integration tests against real SQLite.
package store
