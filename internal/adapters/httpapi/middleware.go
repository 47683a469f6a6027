package httpapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/fotopista/admin-api/internal/ports/out/identity"
)

// NewCORSMiddleware applies the permissive browser policy the admin and
// marketplace front-ends rely on. Pre-flight OPTIONS requests succeed
// unconditionally, before routing and before any auth.
func NewCORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", "authorization, apikey, content-type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRecoverer converts panics into the API's JSON error envelope instead of
// chi's plain-text 500.
func NewRecoverer(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
					if logger != nil {
						logger.Printf("panic: %v\n%s", rvr, debug.Stack())
					}
					writeError(w, http.StatusInternalServerError, fmt.Sprint(rvr))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// NewAuthMiddleware enforces Authorization: Bearer <token> and resolves the
// caller through the identity provider, storing the identity in request
// context for handlers.
func NewAuthMiddleware(provider identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Falta token Bearer")
				return
			}

			ident, err := provider.ResolveIdentity(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) {
					writeError(w, http.StatusUnauthorized, "Token inválido")
					return
				}
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if ident.ID == "" {
				writeError(w, http.StatusUnauthorized, "No se pudo identificar al usuario")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
	return raw, raw != ""
}
