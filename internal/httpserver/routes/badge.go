package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/httpserver/handlers"
	"github.com/casebandit/casebandit/internal/httpserver/mw"
)

func init() { Register(registerBadge) }

func registerBadge(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/badge", handlers.Badge(d))
}
