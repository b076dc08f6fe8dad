package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/httpserver/handlers"
	"github.com/casebandit/casebandit/internal/httpserver/mw"
)

func init() { Register(registerQuickSave) }

// Quick-save endpoints carry the shared sender token on top of the usual
// network restrictions: they are the ones a hotkey sender fires blind.
func registerQuickSave(r chi.Router, d deps.Deps) {
	guarded := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RequireToken(d.QuickSaveToken, d.TrustProxy, d.Logger),
	)

	guarded.Post("/api/quicksave", handlers.QuickSave(d))
	guarded.Post("/api/keypress", handlers.Keypress(d))
}
