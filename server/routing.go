package server

import (
	"net/http"
	"strings"
)

// setupHTTPRoutes configures all HTTP handlers
func (s *Server) setupHTTPRoutes() {
	s.mux.HandleFunc("/health", s.corsMiddleware(s.HandleHealth))
	s.mux.HandleFunc("/api/dims", s.corsMiddleware(s.HandleDims))
	s.mux.HandleFunc("/api/parse", s.corsMiddleware(s.rateLimit(s.HandleParse)))
	s.mux.HandleFunc("/ws/parse", s.HandleParseWebSocket)
}

// corsMiddleware adds CORS headers for configured origins and answers
// preflight requests
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.checkOrigin(r) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// checkOrigin accepts requests without an Origin header, same-host origins
// and origins prefixed by a configured allowed origin
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"); host == r.Host {
		return true
	}
	for _, allowed := range s.Config().Server.AllowedOrigins {
		if allowed != "" && strings.HasPrefix(origin, allowed) {
			return true
		}
	}
	return false
}
