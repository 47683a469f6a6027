package httpapi

import (
	"encoding/json"
	"net/http"
)

// The error envelope is fixed across the whole API: { "error": <string> }.
// The admin front-end surfaces the string verbatim, so handlers pick the
// message and this helper owns the shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
