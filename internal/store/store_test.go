// ABOUTME: Shared test helpers for the store package
// ABOUTME: Provides setupTestStore and entity fixtures on a temp-dir SQLite file

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/agent-console/internal/schedule"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func testTime() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func testDepartment(id, code string) *Department {
	return &Department{
		ID:        id,
		Code:      code,
		Name:      "Recursos Humanos",
		Active:    true,
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
}

func testAgent(id, departmentID string) *Agent {
	return &Agent{
		ID:            id,
		Name:          "Asistente RH",
		SpecialtyArea: "Recursos Humanos",
		DepartmentID:  departmentID,
		Active:        true,
		PromptText:    "Eres Asistente RH",
		Schedule:      schedule.Sparse{},
		CreatedAt:     testTime(),
		UpdatedAt:     testTime(),
	}
}

func mustCreateDepartment(t *testing.T, s *SQLiteStore, id, code string) *Department {
	t.Helper()
	d := testDepartment(id, code)
	require.NoError(t, s.CreateDepartment(context.Background(), d))
	return d
}

func mustCreateAgent(t *testing.T, s *SQLiteStore, id, departmentID string) *Agent {
	t.Helper()
	a := testAgent(id, departmentID)
	require.NoError(t, s.CreateAgent(context.Background(), a))
	return a
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
}
