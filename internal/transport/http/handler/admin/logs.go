package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/shared"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 1000
)

// GetRequestLogs handles GET /api/admin/logs.
func (h *Handlers) GetRequestLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLogFilter(r)
	if err != nil {
		shared.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := h.Storage.GetRequestLogs(filter)
	if err != nil {
		shared.WriteJSONError(w, "Failed to get request logs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []*storage.RequestLog{}
	}

	shared.WriteJSON(w, map[string]any{
		"logs":   logs,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}, http.StatusOK)
}

// DeleteRequestLogs handles DELETE /api/admin/logs?before_date=YYYY-MM-DD.
func (h *Handlers) DeleteRequestLogs(w http.ResponseWriter, r *http.Request) {
	beforeDate := r.URL.Query().Get("before_date")
	if beforeDate == "" {
		shared.WriteJSONError(w, "before_date query parameter is required (format: YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	deleted, err := h.Storage.DeleteRequestLogs(beforeDate)
	if errors.Is(err, storage.ErrInvalidInput) {
		shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if err != nil {
		shared.WriteJSONError(w, "Failed to delete logs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, map[string]any{
		"deleted_count": deleted,
		"before_date":   beforeDate,
	}, http.StatusOK)
}

// parseLogFilter creates a LogFilter from query parameters.
func parseLogFilter(r *http.Request) (storage.LogFilter, error) {
	q := r.URL.Query()
	filter := storage.LogFilter{
		Method: q.Get("method"),
		Path:   q.Get("path"),
		Limit:  defaultLogLimit,
	}

	if v := q.Get("status_code"); v != "" {
		code, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("status_code must be an integer")
		}
		filter.StatusCode = &code
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return filter, errors.New("limit must be a positive integer")
		}
		filter.Limit = min(limit, maxLogLimit)
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("start_date must be YYYY-MM-DD")
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("end_date must be YYYY-MM-DD")
		}
		// Inclusive of the whole end day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}

	return filter, nil
}
