package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"remapd/internal/remap"
)

// setupRoutes builds the ops handler: healthcheck, metrics and the rules
// API for inspecting and changing remap rules at runtime.
func setupRoutes(store RuleStore) http.Handler {
	opsrouter := http.NewServeMux()

	opsrouter.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		r.Body.Close()

		fmt.Fprint(w, "Hello from remapd.")
	})

	opsrouter.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		r.Body.Close()

		if _, err := store.AllRules(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "Rule store unhealthy: %s", err)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	opsrouter.HandleFunc("GET /rules", func(w http.ResponseWriter, r *http.Request) {
		r.Body.Close()
		w.Header().Set("Content-Type", "application/json")

		rules, err := store.AllRules(r.Context())
		if err != nil {
			slog.Error("Failed listing rules.", "error", err)

			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(&APIError{Message: fmt.Sprintf("%s", err)})
			return
		}

		out := make([]SerializableRule, 0, len(rules))
		for _, rule := range rules {
			out = append(out, serializeRule(rule))
		}
		json.NewEncoder(w).Encode(out)
	})

	opsrouter.HandleFunc("POST /rules", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		w.Header().Set("Content-Type", "application/json")

		reqctx, span := tracer.Start(r.Context(), "add_rule")
		defer span.End()

		var sr SerializableRule
		if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
			slog.Error("Failed to parse incoming JSON.", "error", err)

			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(&APIError{Message: fmt.Sprintf("%s", err)})
			return
		}

		rule, err := remap.NewRule([]string{sr.From, sr.To, sr.Suffix})
		if err != nil {
			slog.Error("Rejected rule.", "error", err)

			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(&APIError{Message: fmt.Sprintf("%s", err)})
			return
		}

		if err := store.SaveRule(reqctx, rule); err != nil {
			slog.Error("Failed saving rule.", "rule", rule.ID, "error", err)

			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(&APIError{Message: fmt.Sprintf("%s", err)})
			return
		}
		slog.Info("Activated rule.", "rule", rule.ID, "host", ruleKey(rule), "suffix", rule.Suffix())

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(&APIRuleResponse{
			Rule: rule.ID,
			Host: ruleKey(rule),
		})
	})

	opsrouter.HandleFunc("DELETE /rules/{host}", func(w http.ResponseWriter, r *http.Request) {
		r.Body.Close()
		w.Header().Set("Content-Type", "application/json")

		host := r.PathValue("host")
		if err := store.DeleteRule(r.Context(), host); err != nil {
			slog.Error("Failed deleting rule.", "host", host, "error", err)

			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(&APIError{Message: fmt.Sprintf("%s", err)})
			return
		}
		slog.Info("Deleted rule.", "host", host)

		w.WriteHeader(http.StatusOK)
	})

	if UseMetrics {
		opsrouter.Handle("GET /metrics", promhttp.Handler())
	}

	return otelhttp.NewHandler(opsrouter, "ops_request")
}
