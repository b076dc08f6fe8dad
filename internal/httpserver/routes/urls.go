package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/httpserver/handlers"
	"github.com/casebandit/casebandit/internal/httpserver/mw"
)

func init() { Register(registerURLs) }

func registerURLs(r chi.Router, d deps.Deps) {
	guarded := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))

	guarded.Get("/api/cases/{caseID}/urls", handlers.ListURLs(d))
	guarded.Post("/api/cases/{caseID}/urls", handlers.SaveURL(d))
	guarded.Put("/api/cases/{caseID}/urls/{recordID}", handlers.UpdateURL(d))
	guarded.Delete("/api/cases/{caseID}/urls/{recordID}", handlers.DeleteURL(d))
	guarded.Post("/api/cases/{caseID}/urls/{recordID}/visit", handlers.VisitURL(d))
}
