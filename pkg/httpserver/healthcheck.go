package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// HealthCheckFunc reports whether a dependency is usable.
type HealthCheckFunc func(context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheckHandler serves liveness and readiness probes.
//
// Without checks it always answers 200 {"status":"alive"}. Otherwise every
// named check runs against the request context; all passing yields 200
// {"status":"ready"}, any failure 503 {"status":"not_ready"}. Failed checks
// are logged but their errors are not exposed to the client.
func HealthCheckHandler(log *slog.Logger, checks map[string]HealthCheckFunc) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		if len(names) == 0 {
			writeHealth(w, http.StatusOK, healthResponse{Status: "alive"})
			return
		}

		resp := healthResponse{Status: "ready", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component(name),
					logger.Error(err),
				)
				resp.Checks[name] = "fail"
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		writeHealth(w, status, resp)
	}
}

func writeHealth(w http.ResponseWriter, status int, resp healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
