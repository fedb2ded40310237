// ABOUTME: Tests for seed file parsing and idempotent apply
// ABOUTME: Uses the mock store and a real TOML fixture on disk

package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/agent-console/internal/auth"
	"github.com/helpdeskhq/agent-console/internal/store"
)

const seedFixture = `
[[departments]]
code = "recursos-humanos"
name = "Recursos Humanos"
description = "Nómina y personal"

[[departments]]
code = "finanzas"
name = "Finanzas Corporativas"

[operator]
username = "admin"
password = "secreta123"
department = "recursos-humanos"
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeSeed(t, seedFixture))
	require.NoError(t, err)

	require.Len(t, f.Departments, 2)
	assert.Equal(t, "recursos-humanos", f.Departments[0].Code)
	assert.Equal(t, "Nómina y personal", f.Departments[0].Description)
	require.NotNil(t, f.Operator)
	assert.Equal(t, "admin", f.Operator.Username)
}

func TestLoad_BadTOML(t *testing.T) {
	_, err := Load(writeSeed(t, "departments = ["))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	f, err := Load(writeSeed(t, seedFixture))
	require.NoError(t, err)

	mock := store.NewMockStore()
	ctx := context.Background()

	result, err := Apply(ctx, mock, f)
	require.NoError(t, err)
	assert.Equal(t, 2, result.DepartmentsCreated)
	assert.True(t, result.OperatorCreated)

	dept, err := mock.GetDepartmentByCode(ctx, "recursos-humanos")
	require.NoError(t, err)
	assert.True(t, dept.Active)

	op, err := mock.GetOperatorByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, dept.ID, op.DepartmentID)
	assert.NoError(t, auth.CheckPassword(op.PasswordHash, "secreta123"),
		"stored hash verifies against the seed password")
	assert.NotEqual(t, "secreta123", op.PasswordHash)
}

func TestApply_Idempotent(t *testing.T) {
	f, err := Load(writeSeed(t, seedFixture))
	require.NoError(t, err)

	mock := store.NewMockStore()
	ctx := context.Background()

	_, err = Apply(ctx, mock, f)
	require.NoError(t, err)

	result, err := Apply(ctx, mock, f)
	require.NoError(t, err)
	assert.Zero(t, result.DepartmentsCreated)
	assert.Equal(t, 2, result.DepartmentsSkipped)
	assert.False(t, result.OperatorCreated)
}

func TestApply_UnknownOperatorDepartment(t *testing.T) {
	content := `
[operator]
username = "admin"
password = "secreta123"
department = "no-existe"
`
	f, err := Load(writeSeed(t, content))
	require.NoError(t, err)

	_, err = Apply(context.Background(), store.NewMockStore(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-existe")
}

func TestApply_OperatorRequiresCredentials(t *testing.T) {
	f := &File{Operator: &Operator{Username: "admin"}}

	_, err := Apply(context.Background(), store.NewMockStore(), f)
	assert.Error(t, err)
}
