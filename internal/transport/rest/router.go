package rest

import (
	"net/http"

	"github.com/heartmarshall/ipa-mnemonic/internal/transport/middleware"
)

// NewRouter mounts the handlers and wraps the mux in mws, outermost first.
func NewRouter(health *HealthHandler, match *MatchHandler, mws ...middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/v1/match", match.Match)
	mux.HandleFunc("POST /api/v1/match", match.MatchBatch)
	mux.HandleFunc("GET /api/v1/normalize", match.Normalize)

	return middleware.Chain(mws...)(mux)
}
