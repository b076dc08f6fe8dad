package mw

import (
	"crypto/subtle"
	"net/http"

	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/utils"
)

// TokenHeader carries the shared sender token on quick-save requests.
const TokenHeader = "X-CaseBandit-Token"

// RequireToken rejects requests whose token header does not match the
// configured sender token. An empty configured token disables the check.
func RequireToken(token string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	if token == "" {
		log.Debug("RequireToken: no token configured, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(TokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn("unauthorized",
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", utils.ClientIP(r, trustProxy)))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
