package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/fotopista/admin-api/internal/app/directory"
	"github.com/fotopista/admin-api/internal/app/provisioning"
	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/identity"
)

// Server holds the HTTP handlers and their app-service dependencies.
type Server struct {
	Provisioning *provisioning.Service
	Directory    *directory.Service

	// Provider backs the auth middleware for the directory self-endpoints.
	Provider identity.Provider
}

func NewServer(prov *provisioning.Service, dir *directory.Service, provider identity.Provider) *Server {
	return &Server{
		Provisioning: prov,
		Directory:    dir,
		Provider:     provider,
	}
}

type inviteRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	RedirectTo  string `json:"redirectTo"`
}

type inviteResponse struct {
	OK        bool   `json:"ok"`
	UserID    string `json:"user_id"`
	MagicLink string `json:"magic_link"`
}

func (s *Server) invitePhotographer(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Falta token Bearer")
		return
	}

	var body inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	inv, err := s.Provisioning.InvitePhotographer(r.Context(), token, provisioning.InviteInput{
		Email:       body.Email,
		DisplayName: body.DisplayName,
		RedirectTo:  body.RedirectTo,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inviteResponse{
		OK:        true,
		UserID:    string(inv.UserID),
		MagicLink: inv.MagicLink,
	})
}

type photographerDTO struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type listPhotographersResponse struct {
	Photographers []photographerDTO `json:"photographers"`
}

func (s *Server) listPhotographers(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Directory.ListPhotographers(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	out := make([]photographerDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, photographerFromDomain(p))
	}
	writeJSON(w, http.StatusOK, listPhotographersResponse{Photographers: out})
}

type profileResponse struct {
	Photographer photographerDTO `json:"photographer"`
}

func (s *Server) getMyProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No se pudo identificar al usuario")
		return
	}
	p, err := s.Directory.GetMyProfile(r.Context(), ident.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Photographer: photographerFromDomain(p)})
}

type putProfileRequest struct {
	DisplayName nullable.Nullable[string] `json:"display_name"`
	Bio         nullable.Nullable[string] `json:"bio"`
	Location    nullable.Nullable[string] `json:"location"`
}

func (s *Server) putMyProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No se pudo identificar al usuario")
		return
	}

	var body putProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	in := directory.PutMyProfileInput{
		DisplayName: optionalFromNullable(body.DisplayName),
		Bio:         optionalFromNullable(body.Bio),
		Location:    optionalFromNullable(body.Location),
	}

	p, err := s.Directory.PutMyProfile(r.Context(), ident.ID, in)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Photographer: photographerFromDomain(p)})
}

// writeAppError maps typed app errors onto the JSON envelope; anything else
// is an unexpected dependency failure.
func writeAppError(w http.ResponseWriter, err error) {
	if pe := (*provisioning.Error)(nil); errors.As(err, &pe) {
		writeError(w, pe.Status, pe.Message)
		return
	}
	if de := (*directory.Error)(nil); errors.As(err, &de) {
		writeError(w, de.Status, de.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func photographerFromDomain(p domain.Photographer) photographerDTO {
	return photographerDTO{
		UserID:      string(p.UserID),
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		Location:    p.Location,
	}
}

func optionalFromNullable(n nullable.Nullable[string]) directory.Optional[string] {
	if !n.IsSpecified() {
		return directory.Unspecified[string]()
	}
	if n.IsNull() {
		return directory.Null[string]()
	}
	v, err := n.Get()
	if err != nil {
		return directory.Unspecified[string]()
	}
	return directory.Some(v)
}
