package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/httpserver/handlers"
	"github.com/casebandit/casebandit/internal/httpserver/mw"
)

func init() { Register(registerCases) }

func registerCases(r chi.Router, d deps.Deps) {
	guarded := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))

	guarded.Get("/api/cases", handlers.ListCases(d))
	guarded.Post("/api/cases", handlers.CreateCase(d))
	guarded.Delete("/api/cases/{caseID}", handlers.DeleteCase(d))
	guarded.Put("/api/cases/{caseID}/default", handlers.SetDefaultCase(d))
	guarded.Put("/api/cases/{caseID}/active", handlers.SetActiveCase(d))
	guarded.Get("/api/cases/{caseID}/stats", handlers.CaseStats(d))
}
