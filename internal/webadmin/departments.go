// ABOUTME: Department handlers for the admin API
// ABOUTME: CRUD plus the guarded deactivate endpoint

package webadmin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/helpdeskhq/agent-console/internal/console"
	"github.com/helpdeskhq/agent-console/internal/store"
)

// departmentRequest is the create/update payload
type departmentRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// departmentResponse is the API shape of a department
type departmentResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toDepartmentResponse(d *store.Department) departmentResponse {
	return departmentResponse{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}

// handleDepartmentsList handles GET /admin/departments.
// With ?active=true only active departments are returned.
func (a *Admin) handleDepartmentsList(w http.ResponseWriter, r *http.Request) {
	filter := store.DepartmentFilter{}
	if r.URL.Query().Get("active") == "true" {
		active := true
		filter.Active = &active
	}

	departments, err := a.store.ListDepartments(r.Context(), filter)
	if err != nil {
		a.sendServiceError(w, err)
		return
	}

	out := make([]departmentResponse, len(departments))
	for i, d := range departments {
		out[i] = toDepartmentResponse(d)
	}
	a.sendJSON(w, http.StatusOK, map[string]any{"departments": out})
}

// handleDepartmentCreate handles POST /admin/departments
func (a *Admin) handleDepartmentCreate(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	d, err := a.departments.Create(r.Context(), console.DepartmentForm{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		a.sendServiceError(w, err)
		return
	}

	a.sendJSON(w, http.StatusCreated, toDepartmentResponse(d))
}

// handleDepartmentDetail handles GET /admin/departments/{id}
func (a *Admin) handleDepartmentDetail(w http.ResponseWriter, r *http.Request) {
	d, err := a.store.GetDepartment(r.Context(), r.PathValue("id"))
	if err != nil {
		a.sendServiceError(w, err)
		return
	}
	a.sendJSON(w, http.StatusOK, toDepartmentResponse(d))
}

// handleDepartmentUpdate handles PUT /admin/departments/{id}
func (a *Admin) handleDepartmentUpdate(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	d, err := a.departments.Update(r.Context(), r.PathValue("id"), console.DepartmentForm{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		a.sendServiceError(w, err)
		return
	}

	a.sendJSON(w, http.StatusOK, toDepartmentResponse(d))
}

// handleDepartmentDeactivate handles DELETE /admin/departments/{id}.
// Deletion is a soft deactivate; blocked attempts come back as 409.
func (a *Admin) handleDepartmentDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := a.departments.Deactivate(r.Context(), r.PathValue("id")); err != nil {
		a.sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
