package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/shared"
)

// AdminHealth handles GET /api/admin/health.
func (h *Handlers) AdminHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "connected"

	if err := h.Storage.Ping(); err != nil {
		status = "degraded"
		dbStatus = "error: " + err.Error()
	}

	count, _ := h.Storage.CountRequestLogs()

	shared.WriteJSON(w, map[string]any{
		"status":       status,
		"database":     dbStatus,
		"request_logs": count,
		"uptime_secs":  int64(time.Since(h.StartTime).Seconds()),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// ChangePasswordRequest is the request body for changing admin password.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ChangeAdminPassword changes the admin password (PUT /api/admin/password).
func (h *Handlers) ChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&req); err != nil {
		shared.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !storage.IsValidAdminPassword(req.NewPassword) {
		shared.WriteJSONError(w, "password must be alphanumeric, min 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := storage.HashPassword(req.NewPassword, storage.DefaultArgon2Params())
	if err != nil {
		shared.WriteJSONError(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := h.Storage.SetAdminPasswordHash(hash); err != nil {
		shared.WriteJSONError(w, "failed to save password", http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, map[string]string{"message": "password updated"}, http.StatusOK)
}
