package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/httpserver/handlers"
	"github.com/casebandit/casebandit/internal/httpserver/mw"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	guarded := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))

	guarded.Get("/api/settings", handlers.GetSettings(d))
	guarded.Put("/api/settings", handlers.PutSettings(d))
	guarded.Get("/api/settings/shortcut", handlers.GetShortcut(d))
	guarded.Put("/api/settings/shortcut", handlers.PutShortcut(d))
}
