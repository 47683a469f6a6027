// Package supatest provides an in-memory fake of the identity provider's
// HTTP surface (token resolution, admin user management, magic-link
// issuance). It backs the client tests and the cmd/devidp dev server.
package supatest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// User is a fake provider account.
type User struct {
	ID             string
	Email          string
	EmailConfirmed bool
	Metadata       map[string]any
}

// Fake holds provider state. It is safe for concurrent use.
type Fake struct {
	serviceKey string
	baseURL    string

	mu      sync.Mutex
	users   map[string]*User  // by id
	byEmail map[string]string // normalized email -> id
	tokens  map[string]string // access token -> user id

	// FlatLinkResponse switches generate_link to the legacy shape with a
	// top-level action_link instead of the nested properties object.
	FlatLinkResponse bool
}

func New(serviceKey string) *Fake {
	return &Fake{
		serviceKey: serviceKey,
		users:      make(map[string]*User),
		byEmail:    make(map[string]string),
		tokens:     make(map[string]string),
	}
}

// SetBaseURL sets the URL minted action links point at. Tests set it to the
// httptest server URL after start.
func (f *Fake) SetBaseURL(u string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baseURL = strings.TrimRight(u, "/")
}

// AddUser registers an account and returns its id.
func (f *Fake) AddUser(email string, metadata map[string]any) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.users[id] = &User{ID: id, Email: email, EmailConfirmed: true, Metadata: metadata}
	f.byEmail[strings.ToLower(email)] = id
	return id
}

// AddToken binds an access token to an account id.
func (f *Fake) AddToken(token, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
}

// GetUser returns a copy of the account, when present.
func (f *Fake) GetUser(id string) (User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// Handler serves the provider's HTTP surface.
func (f *Fake) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", f.handleResolveUser)
	mux.HandleFunc("/auth/v1/admin/users", f.handleCreateUser)
	mux.HandleFunc("/auth/v1/admin/users/", f.handleUserByID)
	mux.HandleFunc("/auth/v1/admin/generate_link", f.handleGenerateLink)
	return mux
}

func (f *Fake) handleResolveUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"msg": "method not allowed"})
		return
	}
	token := bearer(r)
	f.mu.Lock()
	id, ok := f.tokens[token]
	u := f.users[id]
	f.mu.Unlock()
	if !ok || u == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
		return
	}
	writeJSON(w, http.StatusOK, userJSON(*u))
}

func (f *Fake) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"msg": "method not allowed"})
		return
	}
	if !f.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid service key"})
		return
	}
	var in struct {
		Email        string         `json:"email"`
		EmailConfirm bool           `json:"email_confirm"`
		UserMetadata map[string]any `json:"user_metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "invalid body"})
		return
	}

	f.mu.Lock()
	if _, exists := f.byEmail[strings.ToLower(in.Email)]; exists {
		f.mu.Unlock()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"msg": "User already registered"})
		return
	}
	id := uuid.NewString()
	u := &User{ID: id, Email: in.Email, EmailConfirmed: in.EmailConfirm, Metadata: in.UserMetadata}
	f.users[id] = u
	f.byEmail[strings.ToLower(in.Email)] = id
	out := *u
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, userJSON(out))
}

func (f *Fake) handleUserByID(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid service key"})
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/auth/v1/admin/users/")

	switch r.Method {
	case http.MethodGet:
		f.mu.Lock()
		u, ok := f.users[id]
		var out User
		if ok {
			out = *u
		}
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"msg": "User not found"})
			return
		}
		writeJSON(w, http.StatusOK, userJSON(out))

	case http.MethodPut:
		var in struct {
			UserMetadata map[string]any `json:"user_metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "invalid body"})
			return
		}
		f.mu.Lock()
		u, ok := f.users[id]
		var out User
		if ok {
			u.Metadata = in.UserMetadata
			out = *u
		}
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"msg": "User not found"})
			return
		}
		writeJSON(w, http.StatusOK, userJSON(out))

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"msg": "method not allowed"})
	}
}

func (f *Fake) handleGenerateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"msg": "method not allowed"})
		return
	}
	if !f.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid service key"})
		return
	}
	var in struct {
		Type       string `json:"type"`
		Email      string `json:"email"`
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "invalid body"})
		return
	}

	f.mu.Lock()
	id, ok := f.byEmail[strings.ToLower(in.Email)]
	u := f.users[id]
	base := f.baseURL
	flat := f.FlatLinkResponse
	f.mu.Unlock()
	if !ok || u == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"msg": "User not found"})
		return
	}

	link := fmt.Sprintf("%s/auth/v1/verify?token=%s&type=magiclink", base, uuid.NewString())
	if in.RedirectTo != "" {
		link += "&redirect_to=" + in.RedirectTo
	}

	if flat {
		out := userJSON(*u)
		out["action_link"] = link
		writeJSON(w, http.StatusOK, out)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": map[string]any{"action_link": link},
		"user":       userJSON(*u),
	})
}

func (f *Fake) authorized(r *http.Request) bool {
	return bearer(r) == f.serviceKey
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func userJSON(u User) map[string]any {
	out := map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"user_metadata": u.Metadata,
	}
	if u.EmailConfirmed {
		out["email_confirmed_at"] = "2024-01-01T00:00:00Z"
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
