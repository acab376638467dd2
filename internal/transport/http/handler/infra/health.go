package infra

import (
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/bioalign/internal/version"
)

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]string{
		"status": "active",
		"app":    "bioalign",
	}, http.StatusOK)
}

// Info returns version, uptime and render cache statistics at /api/info.
func (h *Handlers) Info(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.StartTime)

	response := map[string]any{
		"name":        "bioalign",
		"version":     version.Version,
		"go_version":  runtime.Version(),
		"started":     humanize.Time(h.StartTime),
		"uptime":      uptime.Round(time.Second).String(),
		"uptime_secs": int64(uptime.Seconds()),
	}

	if h.Cache != nil && h.Cache.Metrics != nil {
		m := h.Cache.Metrics
		response["cache"] = map[string]any{
			"hits":       m.Hits(),
			"misses":     m.Misses(),
			"hit_ratio":  m.Ratio(),
			"cost_added": humanize.Bytes(m.CostAdded()),
		}
	}

	shared.WriteJSON(w, response, http.StatusOK)
}
