package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: middleware handles CORS, panics and
// bearer auth; handlers decode JSON and delegate to the app services.
func NewRouter(s *Server, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewCORSMiddleware())
	r.Use(NewRecoverer(logger))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	// Health endpoint is unauthenticated (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/admin/photographers", s.invitePhotographer)

	r.Get("/photographers", s.listPhotographers)

	auth := NewAuthMiddleware(s.Provider)
	r.With(auth).Get("/photographers/me", s.getMyProfile)
	r.With(auth).Put("/photographers/me", s.putMyProfile)

	return r
}
