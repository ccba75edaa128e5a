package health

import (
	"context"
	"encoding/json"
	"net/http"
)

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// Checker reports whether a dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

func Readiness(checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type resp struct {
			Status  string   `json:"status"`
			Failing []string `json:"failing,omitempty"`
		}
		var failing []string
		for name, c := range checks {
			if c == nil {
				continue
			}
			if err := c.Check(r.Context()); err != nil {
				failing = append(failing, name)
			}
		}
		out := resp{Status: "ready"}
		w.Header().Set("Content-Type", "application/json")
		if len(failing) > 0 {
			out.Status = "not_ready"
			out.Failing = failing
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
