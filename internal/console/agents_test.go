// ABOUTME: Tests for AgentService create/update/delete and editor loading
// ABOUTME: Uses the mock store, including error injection for fail-closed deletes

package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/agent-console/internal/prompt"
	"github.com/helpdeskhq/agent-console/internal/schedule"
	"github.com/helpdeskhq/agent-console/internal/store"
)

func newAgentFixture(t *testing.T) (*AgentService, *store.MockStore) {
	t.Helper()
	mock := store.NewMockStore()
	svc := NewAgentService(mock, prompt.Composer{Institution: "Instituto Central"})
	return svc, mock
}

func seedDepartment(t *testing.T, mock *store.MockStore, id, code string) {
	t.Helper()
	require.NoError(t, mock.CreateDepartment(context.Background(), &store.Department{
		ID: id, Code: code, Name: "Departamento de prueba", Active: true,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}))
}

func validForm() AgentForm {
	return AgentForm{
		Name:          "Asistente RH",
		SpecialtyArea: "Recursos Humanos",
		Active:        true,
		Prompt: prompt.Spec{
			Mission: "Ayudar con nómina",
			Rules:   []string{"Responde en español", "Sé breve"},
			Tone:    prompt.ToneFormal,
		},
		Schedule: schedule.Empty(),
	}
}

func TestAgentService_Create(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")

	form := validForm()
	form.DepartmentID = "dep-1"
	dense := schedule.Empty()
	dense["lunes"] = schedule.DaySchedule{Active: true, Blocks: []schedule.Block{{Inicio: "08:00", Fin: "17:00"}}}
	form.Schedule = dense

	agent, err := svc.Create(ctx, form)
	require.NoError(t, err)

	// The stored record carries the rendered forms, not the authoring fields
	assert.Contains(t, agent.PromptText, "MISIÓN:\nAyudar con nómina")
	assert.Contains(t, agent.PromptText, "Eres Asistente RH del Instituto Central, especializado en Recursos Humanos.")
	assert.Equal(t, schedule.Sparse{"lunes": {{Inicio: "08:00", Fin: "17:00"}}}, agent.Schedule)

	stored, err := mock.GetAgent(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "dep-1", stored.DepartmentID)
}

func TestAgentService_Create_FieldValidation(t *testing.T) {
	svc, _ := newAgentFixture(t)

	form := validForm()
	form.Name = "  "
	form.Prompt.Mission = ""
	form.Prompt.Rules = []string{"solo una"}

	_, err := svc.Create(context.Background(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "mission")
	assert.Contains(t, verr.Fields, "rules")
}

func TestAgentService_Create_DepartmentTaken(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")

	first := validForm()
	first.DepartmentID = "dep-1"
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validForm()
	second.DepartmentID = "dep-1"
	_, err = svc.Create(ctx, second)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "department")
}

func TestAgentService_Create_UnknownDepartment(t *testing.T) {
	svc, _ := newAgentFixture(t)

	form := validForm()
	form.DepartmentID = "no-existe"

	_, err := svc.Create(context.Background(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "departamento no encontrado", verr.Fields["department"])
}

func TestAgentService_Create_SaveTimeConflict(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")

	// Another actor grabs the department between validation and save
	mock.FailWith("CreateAgent", store.ErrDepartmentTaken)

	form := validForm()
	form.DepartmentID = "dep-1"
	_, err := svc.Create(ctx, form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr,
		"a late-discovered conflict is a recoverable validation outcome")
	assert.Contains(t, verr.Fields, "department")
}

func TestAgentService_Update_DepartmentImmutable(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")
	seedDepartment(t, mock, "dep-2", "finanzas")

	form := validForm()
	form.DepartmentID = "dep-1"
	agent, err := svc.Create(ctx, form)
	require.NoError(t, err)

	changed := validForm()
	changed.DepartmentID = "dep-2"
	_, err = svc.Update(ctx, agent.ID, changed)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "el departamento no se puede cambiar una vez asignado", verr.Fields["department"])
}

func TestAgentService_Update_AssignsWhenUnassigned(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")

	agent, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	require.Empty(t, agent.DepartmentID)

	form := validForm()
	form.DepartmentID = "dep-1"
	updated, err := svc.Update(ctx, agent.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "dep-1", updated.DepartmentID)
}

func TestAgentService_Update_NotFound(t *testing.T) {
	svc, _ := newAgentFixture(t)

	_, err := svc.Update(context.Background(), "missing", validForm())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAgentService_Delete_Clean(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, agent.ID))

	_, err = mock.GetAgent(ctx, agent.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "agent deletes are hard")
}

func TestAgentService_Delete_BlockedByReferences(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	require.NoError(t, mock.CreateContent(ctx, &store.Content{ID: "c-1", AgentID: agent.ID, Title: "Horarios"}))
	require.NoError(t, mock.CreateCategory(ctx, &store.Category{ID: "cat-1", AgentID: agent.ID, Name: "Trámites"}))

	err = svc.Delete(ctx, agent.ID)

	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, 1, blocked.Report.BlockingContents)
	assert.Equal(t, 1, blocked.Report.BlockingCategories)

	_, err = mock.GetAgent(ctx, agent.ID)
	assert.NoError(t, err, "blocked delete must not remove the agent")
}

func TestAgentService_Delete_FailsClosedOnLookupError(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	mock.FailWith("ListCategoriesByAgent", errors.New("connection reset"))

	err = svc.Delete(ctx, agent.ID)
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*BlockedError))

	_, err = mock.GetAgent(ctx, agent.ID)
	assert.NoError(t, err, "an unanswerable check refuses the delete")
}

func TestAgentService_Editor_RecoversAuthoringForm(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")

	form := validForm()
	form.DepartmentID = "dep-1"
	dense := schedule.Empty()
	dense["viernes"] = schedule.DaySchedule{Active: true, Blocks: []schedule.Block{{Inicio: "09:00", Fin: "14:00"}}}
	form.Schedule = dense

	agent, err := svc.Create(ctx, form)
	require.NoError(t, err)

	editor, err := svc.Editor(ctx, agent.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ayudar con nómina", editor.Form.Prompt.Mission)
	assert.Equal(t, []string{"Responde en español", "Sé breve"}, editor.Form.Prompt.Rules)
	assert.Equal(t, prompt.ToneFormal, editor.Form.Prompt.Tone)
	assert.True(t, editor.Form.Schedule["viernes"].Active)
	assert.True(t, editor.DepartmentLocked)
	require.Len(t, editor.Departments, 1, "assigned agent sees only its own department")
	assert.Equal(t, "dep-1", editor.Departments[0].ID)
}

func TestAgentService_NewEditor_OffersFreeDepartments(t *testing.T) {
	svc, mock := newAgentFixture(t)
	ctx := context.Background()
	seedDepartment(t, mock, "dep-1", "recursos-humanos")
	seedDepartment(t, mock, "dep-2", "finanzas")

	form := validForm()
	form.DepartmentID = "dep-1"
	_, err := svc.Create(ctx, form)
	require.NoError(t, err)

	editor, err := svc.NewEditor(ctx)
	require.NoError(t, err)

	require.Len(t, editor.Departments, 1)
	assert.Equal(t, "dep-2", editor.Departments[0].ID)
	assert.False(t, editor.DepartmentLocked)
	assert.Equal(t, prompt.DefaultTone, editor.Form.Prompt.Tone)
}
