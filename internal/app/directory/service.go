package directory

import (
	"context"
	"errors"
	"net/http"

	"github.com/fotopista/admin-api/internal/domain"
	clockport "github.com/fotopista/admin-api/internal/ports/out/clock"
	"github.com/fotopista/admin-api/internal/ports/out/identity"
	"github.com/fotopista/admin-api/internal/ports/out/photographerrepo"
)

// Service serves the public photographer directory and the authenticated
// self-profile operations backing the marketplace's directory pages.
type Service struct {
	repo     photographerrepo.Repository
	provider identity.Provider
	clk      clockport.Clock
}

func NewService(repo photographerrepo.Repository, provider identity.Provider, clk clockport.Clock) *Service {
	return &Service{repo: repo, provider: provider, clk: clk}
}

// ListPhotographers returns active directory entries. It is a public read;
// no caller identity is involved.
func (s *Service) ListPhotographers(ctx context.Context) ([]domain.Photographer, error) {
	ps, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Photographer, 0, len(ps))
	for _, p := range ps {
		out = append(out, toDomain(p))
	}
	return out, nil
}

func (s *Service) GetMyProfile(ctx context.Context, caller domain.UserID) (domain.Photographer, error) {
	p, err := s.repo.GetByUser(ctx, caller)
	if err != nil {
		if errors.Is(err, photographerrepo.ErrNotFound) {
			return domain.Photographer{}, &Error{Status: http.StatusNotFound, Code: CodeProfileNotFound, Message: "Perfil no encontrado"}
		}
		return domain.Photographer{}, err
	}
	return toDomain(p), nil
}

// PutMyProfile creates or updates the caller's directory profile. Only
// accounts carrying the photographer role in provider metadata may write.
func (s *Service) PutMyProfile(ctx context.Context, caller domain.UserID, in PutMyProfileInput) (domain.Photographer, error) {
	acct, err := s.provider.GetUser(ctx, caller)
	if err != nil {
		return domain.Photographer{}, &Error{Status: http.StatusInternalServerError, Code: CodeDependencyFailed, Message: err.Error()}
	}
	if !domain.HasRole(domain.RolesFromMetadata(acct.Metadata), domain.RolePhotographer) {
		return domain.Photographer{}, &Error{Status: http.StatusForbidden, Code: CodeNotPhotographer, Message: "No sos fotógrafo."}
	}

	existing, err := s.repo.GetByUser(ctx, caller)
	switch {
	case err == nil:
		return s.updateProfile(ctx, existing, in)
	case errors.Is(err, photographerrepo.ErrNotFound):
		return s.createProfile(ctx, caller, in)
	default:
		return domain.Photographer{}, err
	}
}

func (s *Service) createProfile(ctx context.Context, caller domain.UserID, in PutMyProfileInput) (domain.Photographer, error) {
	if !in.DisplayName.IsSpecified() || in.DisplayName.IsNull() {
		return domain.Photographer{}, nameRequired()
	}
	displayName := domain.NormalizeHumanName(in.DisplayName.Value())
	if displayName == "" {
		return domain.Photographer{}, nameRequired()
	}

	now := s.clk.Now()
	p := photographerrepo.Profile{
		UserID:      caller,
		DisplayName: displayName,
		Bio:         valueOrNil(in.Bio),
		Location:    valueOrNil(in.Location),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// A concurrent create for the same caller lost the race; re-read
		// and apply as an update.
		if errors.Is(err, photographerrepo.ErrAlreadyExists) {
			existing, gerr := s.repo.GetByUser(ctx, caller)
			if gerr != nil {
				return domain.Photographer{}, gerr
			}
			return s.updateProfile(ctx, existing, in)
		}
		return domain.Photographer{}, err
	}
	return toDomain(p), nil
}

func (s *Service) updateProfile(ctx context.Context, p photographerrepo.Profile, in PutMyProfileInput) (domain.Photographer, error) {
	if in.DisplayName.IsSpecified() {
		if in.DisplayName.IsNull() {
			return domain.Photographer{}, nameRequired()
		}
		displayName := domain.NormalizeHumanName(in.DisplayName.Value())
		if displayName == "" {
			return domain.Photographer{}, nameRequired()
		}
		p.DisplayName = displayName
	}
	applyField(&p.Bio, in.Bio)
	applyField(&p.Location, in.Location)

	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Photographer{}, err
	}
	return toDomain(p), nil
}

func applyField(dst **string, o Optional[string]) {
	if !o.IsSpecified() {
		return
	}
	if o.IsNull() {
		*dst = nil
		return
	}
	v := o.Value()
	*dst = &v
}

func valueOrNil(o Optional[string]) *string {
	if !o.IsSpecified() || o.IsNull() {
		return nil
	}
	v := o.Value()
	return &v
}

func nameRequired() *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeNameRequired, Message: "Nombre requerido"}
}

func toDomain(p photographerrepo.Profile) domain.Photographer {
	return domain.Photographer{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Bio:         cloneStringPtr(p.Bio),
		Location:    cloneStringPtr(p.Location),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
