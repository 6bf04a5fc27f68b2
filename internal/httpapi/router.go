package httpapi

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/worker"
)

// NewRouter wires the API routes. A nil limiter disables rate limiting.
// Forwarding headers are honored only from peers inside trusted.
func NewRouter(h *Handlers, limiter *worker.Limiter, trusted []*net.IPNet, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()
	r.Use(TrustedRealIP(trusted))
	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, newAPIError(http.StatusNotFound, "not_found", "Not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, newAPIError(http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil))
	})

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimit(limiter, log))
		}

		r.Post("/ai/chat", h.Chat)
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			r.MethodFunc(method, "/ai/chat", h.ChatMethodNotAllowed)
		}
		r.Post("/ai/chat/voice", h.Voice)

		r.Get("/news", h.News)
		r.Get("/countries", h.Countries)
		r.Get("/countries/nearest", h.NearestCountry)
		r.Get("/countries/distance", h.CountryDistance)
	})

	return r
}
