// ABOUTME: Admin JSON API for the agent console
// ABOUTME: Routes, bearer-token auth, login, and the shared response helpers

package webadmin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/helpdeskhq/agent-console/internal/auth"
	"github.com/helpdeskhq/agent-console/internal/console"
	"github.com/helpdeskhq/agent-console/internal/store"
)

// Config holds admin API configuration
type Config struct {
	// BaseURL is the external URL of the console
	BaseURL string

	// TokenTTL is how long issued login tokens last
	TokenTTL time.Duration
}

// Admin handles the console's admin API routes
type Admin struct {
	store       store.Store
	departments *console.DepartmentService
	agents      *console.AgentService
	verifier    *auth.JWTVerifier
	config      Config
	logger      *slog.Logger
}

// New creates a new Admin handler
func New(s store.Store, departments *console.DepartmentService, agents *console.AgentService, verifier *auth.JWTVerifier, cfg Config) *Admin {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &Admin{
		store:       s,
		departments: departments,
		agents:      agents,
		verifier:    verifier,
		config:      cfg,
		logger:      slog.Default().With("component", "webadmin"),
	}
}

// RegisterRoutes registers all admin routes on the given mux
func (a *Admin) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := auth.Middleware(a.verifier)

	// Public routes (no auth required)
	mux.HandleFunc("POST /admin/login", a.handleLogin)

	// Department management
	mux.HandleFunc("GET /admin/departments", requireAuth(a.handleDepartmentsList))
	mux.HandleFunc("POST /admin/departments", requireAuth(a.handleDepartmentCreate))
	mux.HandleFunc("GET /admin/departments/{id}", requireAuth(a.handleDepartmentDetail))
	mux.HandleFunc("PUT /admin/departments/{id}", requireAuth(a.handleDepartmentUpdate))
	mux.HandleFunc("DELETE /admin/departments/{id}", requireAuth(a.handleDepartmentDeactivate))

	// Agent management
	mux.HandleFunc("GET /admin/agents", requireAuth(a.handleAgentsList))
	mux.HandleFunc("POST /admin/agents", requireAuth(a.handleAgentCreate))
	mux.HandleFunc("POST /admin/agents/preview", requireAuth(a.handleAgentPreview))
	mux.HandleFunc("GET /admin/agents/editor", requireAuth(a.handleAgentNewEditor))
	mux.HandleFunc("GET /admin/agents/{id}", requireAuth(a.handleAgentDetail))
	mux.HandleFunc("GET /admin/agents/{id}/editor", requireAuth(a.handleAgentEditor))
	mux.HandleFunc("PUT /admin/agents/{id}", requireAuth(a.handleAgentUpdate))
	mux.HandleFunc("DELETE /admin/agents/{id}", requireAuth(a.handleAgentDelete))

	a.logger.Info("admin routes registered")
}

// loginRequest is the login form payload
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token
type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// handleLogin checks operator credentials and issues a JWT. Unknown users,
// wrong passwords, and inactive operators all come back as the same 401.
func (a *Admin) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	op, err := a.store.GetOperatorByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		a.logger.Error("operator lookup failed", "error", err)
		a.sendJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	storedHash := ""
	if op != nil && op.Active {
		storedHash = op.PasswordHash
	}
	if err := auth.CheckPassword(storedHash, req.Password); err != nil {
		a.logger.Info("login rejected", "username", req.Username)
		a.sendJSONError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := a.verifier.Generate(op.ID, a.config.TokenTTL)
	if err != nil {
		a.logger.Error("token generation failed", "error", err)
		a.sendJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.logger.Info("operator logged in", "operator_id", op.ID)
	a.sendJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(a.config.TokenTTL.Seconds()),
	})
}

// sendJSON writes a JSON response with the given status
func (a *Admin) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response
func (a *Admin) sendJSONError(w http.ResponseWriter, status int, message string) {
	a.sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps service-layer errors onto HTTP responses. Validation
// failures become 422 with the field map, blocked deletes become 409 with the
// count-bearing reason, and missing entities become 404.
func (a *Admin) sendServiceError(w http.ResponseWriter, err error) {
	var verr *console.ValidationError
	var blocked *console.BlockedError

	switch {
	case errors.As(err, &verr):
		a.sendJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validación fallida",
			"fields": verr.Fields,
		})
	case errors.As(err, &blocked):
		a.sendJSON(w, http.StatusConflict, map[string]any{
			"error":               blocked.Report.Reason(),
			"blocking_users":      blocked.Report.BlockingUsers,
			"blocking_agents":     blocked.Report.BlockingAgents,
			"blocking_contents":   blocked.Report.BlockingContents,
			"blocking_categories": blocked.Report.BlockingCategories,
		})
	case errors.Is(err, store.ErrNotFound):
		a.sendJSONError(w, http.StatusNotFound, "not found")
	default:
		a.logger.Error("request failed", "error", err)
		a.sendJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
