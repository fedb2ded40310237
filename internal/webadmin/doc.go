// Package webadmin provides the JSON administration API for the console.
//
// # Overview
//
// The admin API exposes the console services over HTTP:
//
//   - Department management: CRUD plus the guarded deactivate
//   - Agent management: CRUD, editor sessions, prompt preview
//   - Login: operator credentials exchanged for a bearer token
//
// # Routes
//
// All routes live under /admin. Only POST /admin/login is public; every
// other route requires a bearer token issued by login.
//
// # Error shape
//
// Handlers return JSON errors with a single "error" message. Two cases
// carry more:
//
//   - 422 Unprocessable Entity: validation failures include a "fields"
//     map with one Spanish message per offending field, keyed for inline
//     display next to the form control.
//   - 409 Conflict: deletes refused by the dependency guard include the
//     operator-facing reason plus the blocking reference counts.
//
// A 409 is never a partial success. The delete did not happen and the
// caller is expected to show the reason as-is.
//
// # Editor sessions
//
// GET /admin/agents/editor and GET /admin/agents/{id}/editor return the
// authoring form for the editor: structured prompt fields recovered from
// the stored text, the dense seven-day schedule, and the department
// options the selector may offer. For an agent with a department the
// selector is locked to exactly that department.
package webadmin
