package middleware

import (
	"net/http"

	"github.com/2beens/fitcalc/pkg"

	log "github.com/sirupsen/logrus"
)

// BasicAuth guards the prometheus scrape endpoint. The password is checked
// against a bcrypt hash. An empty username disables the check.
func BasicAuth(username, passwordHash string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username == "" {
			next.ServeHTTP(w, r)
			return
		}

		reqUser, reqPass, ok := r.BasicAuth()
		if !ok || reqUser != username || !pkg.CheckPasswordHash(reqPass, passwordHash) {
			log.Warnf("metrics: unauthorized scrape attempt from [%s]", r.RemoteAddr)
			w.Header().Set("WWW-Authenticate", `Basic realm="metrics"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
