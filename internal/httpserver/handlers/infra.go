package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each collaborator for the /infra dashboard.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"vault":   checkVault(d),
			"seeding": checkSeeding(d),
			"capture": checkCapture(d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	// The vault is the only component the daemon cannot live without.
	if vault, exists := components["vault"]; exists && !vault.OK {
		return "critical"
	}
	for name, c := range components {
		if name != "vault" && !c.OK && c.Impact != "" {
			return "degraded"
		}
	}
	return "nominal"
}

func checkVault(d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Backend,
			Impact: "saves-will-fail",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.Backend}
}

func checkSeeding(d deps.Deps) componentStatus {
	if d.SeedReloadTrigger == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Mode: "periodic"}
}

func checkCapture(d deps.Deps) componentStatus {
	if !d.CaptureEnabled {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Mode: "http"}
}
