package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// open to any origin: embeddable calculators and MCP clients (which often send no Origin)
var openPathPrefixes = []string{
	"/embed/",
	"/mcp",
}

func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case pathIsOpen(r.URL.Path):
				allowOrigin := origin
				if allowOrigin == "" {
					allowOrigin = "*"
				}
				setCorsHeaders(w, allowOrigin)
			case allowed[origin]:
				setCorsHeaders(w, origin)
			case origin == "":
				// not a browser (cli, curl, server to server), cors does not apply
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			// preflight: answered here so handlers only ever see real requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func pathIsOpen(path string) bool {
	for _, prefix := range openPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func setCorsHeaders(w http.ResponseWriter, allowOrigin string) {
	w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
	w.Header().Set("Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, MCP-Protocol-Version, MCP-Session-Id",
	)
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
	w.Header().Add("Vary", "Origin")
}
