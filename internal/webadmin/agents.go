// ABOUTME: Agent handlers for the admin API
// ABOUTME: CRUD, editor loading, and the markdown-rendered prompt preview

package webadmin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/helpdeskhq/agent-console/internal/console"
	"github.com/helpdeskhq/agent-console/internal/prompt"
	"github.com/helpdeskhq/agent-console/internal/schedule"
	"github.com/helpdeskhq/agent-console/internal/store"
)

// promptPayload is the structured prompt section of an agent form
type promptPayload struct {
	Mission        string   `json:"mission"`
	Specialization string   `json:"specialization"`
	Rules          []string `json:"rules"`
	Tone           string   `json:"tone"`
}

// agentRequest is the create/update payload: the authoring form, not the
// storage shapes.
type agentRequest struct {
	Name          string         `json:"name"`
	SpecialtyArea string         `json:"specialty_area"`
	DepartmentID  string         `json:"department_id"`
	Active        bool           `json:"active"`
	Prompt        promptPayload  `json:"prompt"`
	Schedule      schedule.Dense `json:"schedule"`
}

func (r agentRequest) toForm() console.AgentForm {
	sched := r.Schedule
	if sched == nil {
		sched = schedule.Empty()
	}
	return console.AgentForm{
		Name:          r.Name,
		SpecialtyArea: r.SpecialtyArea,
		DepartmentID:  r.DepartmentID,
		Active:        r.Active,
		Prompt: prompt.Spec{
			Mission:        r.Prompt.Mission,
			Specialization: r.Prompt.Specialization,
			Rules:          r.Prompt.Rules,
			Tone:           prompt.Tone(r.Prompt.Tone),
		},
		Schedule: sched,
	}
}

// agentResponse is the API shape of a persisted agent
type agentResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SpecialtyArea string          `json:"specialty_area"`
	DepartmentID  string          `json:"department_id,omitempty"`
	Active        bool            `json:"active"`
	PromptText    string          `json:"prompt_text"`
	Schedule      schedule.Sparse `json:"schedule"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func toAgentResponse(ag *store.Agent) agentResponse {
	return agentResponse{
		ID:            ag.ID,
		Name:          ag.Name,
		SpecialtyArea: ag.SpecialtyArea,
		DepartmentID:  ag.DepartmentID,
		Active:        ag.Active,
		PromptText:    ag.PromptText,
		Schedule:      ag.Schedule,
		CreatedAt:     ag.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     ag.UpdatedAt.Format(time.RFC3339),
	}
}

// departmentOption is a selector entry in the editor response
type departmentOption struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// editorResponse is the editor session payload: the recovered authoring form
// and the departments the selector may offer.
type editorResponse struct {
	Agent            *agentResponse     `json:"agent,omitempty"`
	Form             agentRequest       `json:"form"`
	Departments      []departmentOption `json:"departments"`
	DepartmentLocked bool               `json:"department_locked"`
}

func toEditorResponse(e *console.AgentEditor) editorResponse {
	resp := editorResponse{
		Form: agentRequest{
			Name:          e.Form.Name,
			SpecialtyArea: e.Form.SpecialtyArea,
			DepartmentID:  e.Form.DepartmentID,
			Active:        e.Form.Active,
			Prompt: promptPayload{
				Mission:        e.Form.Prompt.Mission,
				Specialization: e.Form.Prompt.Specialization,
				Rules:          e.Form.Prompt.Rules,
				Tone:           string(e.Form.Prompt.Tone),
			},
			Schedule: e.Form.Schedule,
		},
		Departments:      make([]departmentOption, len(e.Departments)),
		DepartmentLocked: e.DepartmentLocked,
	}
	for i, d := range e.Departments {
		resp.Departments[i] = departmentOption{ID: d.ID, Code: d.Code, Name: d.Name}
	}
	if e.Agent != nil {
		ar := toAgentResponse(e.Agent)
		resp.Agent = &ar
	}
	return resp
}

// handleAgentsList handles GET /admin/agents.
// ?active=true and ?department_id=X narrow the result.
func (a *Admin) handleAgentsList(w http.ResponseWriter, r *http.Request) {
	filter := store.AgentFilter{
		DepartmentID: r.URL.Query().Get("department_id"),
	}
	if r.URL.Query().Get("active") == "true" {
		active := true
		filter.Active = &active
	}

	agents, err := a.store.ListAgents(r.Context(), filter)
	if err != nil {
		a.sendServiceError(w, err)
		return
	}

	out := make([]agentResponse, len(agents))
	for i, ag := range agents {
		out[i] = toAgentResponse(ag)
	}
	a.sendJSON(w, http.StatusOK, map[string]any{"agents": out})
}

// handleAgentCreate handles POST /admin/agents
func (a *Admin) handleAgentCreate(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ag, err := a.agents.Create(r.Context(), req.toForm())
	if err != nil {
		a.sendServiceError(w, err)
		return
	}

	a.sendJSON(w, http.StatusCreated, toAgentResponse(ag))
}

// handleAgentDetail handles GET /admin/agents/{id}
func (a *Admin) handleAgentDetail(w http.ResponseWriter, r *http.Request) {
	ag, err := a.store.GetAgent(r.Context(), r.PathValue("id"))
	if err != nil {
		a.sendServiceError(w, err)
		return
	}
	a.sendJSON(w, http.StatusOK, toAgentResponse(ag))
}

// handleAgentUpdate handles PUT /admin/agents/{id}
func (a *Admin) handleAgentUpdate(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ag, err := a.agents.Update(r.Context(), r.PathValue("id"), req.toForm())
	if err != nil {
		a.sendServiceError(w, err)
		return
	}

	a.sendJSON(w, http.StatusOK, toAgentResponse(ag))
}

// handleAgentDelete handles DELETE /admin/agents/{id}.
// Blocked deletes come back as 409 with the reference counts.
func (a *Admin) handleAgentDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.agents.Delete(r.Context(), r.PathValue("id")); err != nil {
		a.sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAgentNewEditor handles GET /admin/agents/editor
func (a *Admin) handleAgentNewEditor(w http.ResponseWriter, r *http.Request) {
	editor, err := a.agents.NewEditor(r.Context())
	if err != nil {
		a.sendServiceError(w, err)
		return
	}
	a.sendJSON(w, http.StatusOK, toEditorResponse(editor))
}

// handleAgentEditor handles GET /admin/agents/{id}/editor
func (a *Admin) handleAgentEditor(w http.ResponseWriter, r *http.Request) {
	editor, err := a.agents.Editor(r.Context(), r.PathValue("id"))
	if err != nil {
		a.sendServiceError(w, err)
		return
	}
	a.sendJSON(w, http.StatusOK, toEditorResponse(editor))
}

// previewResponse carries the composed prompt text and its HTML rendering
type previewResponse struct {
	Prompt string `json:"prompt"`
	HTML   string `json:"html"`
}

// handleAgentPreview handles POST /admin/agents/preview. Nothing is saved;
// the composed text and a markdown-rendered HTML version come back for
// display in the editor.
func (a *Admin) handleAgentPreview(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text := a.agents.Preview(req.toForm())

	var htmlBuf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &htmlBuf); err != nil {
		a.logger.Error("failed to convert markdown", "error", err)
		htmlBuf.Reset()
		htmlBuf.WriteString("<p>No se pudo generar la vista previa.</p>")
	}

	a.sendJSON(w, http.StatusOK, previewResponse{
		Prompt: text,
		HTML:   htmlBuf.String(),
	})
}
