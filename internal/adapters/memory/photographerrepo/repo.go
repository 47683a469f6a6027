package photographerrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/photographerrepo"
)

// Repo is an in-memory implementation of photographerrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	byUser map[domain.UserID]photographerrepo.Profile
}

func NewRepo() *Repo {
	return &Repo{byUser: make(map[domain.UserID]photographerrepo.Profile)}
}

func (r *Repo) Create(ctx context.Context, p photographerrepo.Profile) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[p.UserID]; ok {
		return photographerrepo.ErrAlreadyExists
	}
	r.byUser[p.UserID] = cloneProfile(p)
	return nil
}

func (r *Repo) Update(ctx context.Context, p photographerrepo.Profile) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[p.UserID]; !ok {
		return photographerrepo.ErrNotFound
	}
	r.byUser[p.UserID] = cloneProfile(p)
	return nil
}

func (r *Repo) GetByUser(ctx context.Context, id domain.UserID) (photographerrepo.Profile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[id]
	if !ok {
		return photographerrepo.Profile{}, photographerrepo.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *Repo) ListActive(ctx context.Context) ([]photographerrepo.Profile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]photographerrepo.Profile, 0, len(r.byUser))
	for _, p := range r.byUser {
		if !p.IsActive {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	sortProfiles(out)
	return out, nil
}

func cloneProfile(p photographerrepo.Profile) photographerrepo.Profile {
	out := p
	out.Bio = cloneStringPtr(p.Bio)
	out.Location = cloneStringPtr(p.Location)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sortProfiles(ps []photographerrepo.Profile) {
	sort.Slice(ps, func(i, j int) bool {
		di := strings.ToLower(ps[i].DisplayName)
		dj := strings.ToLower(ps[j].DisplayName)
		if di == dj {
			return ps[i].UserID < ps[j].UserID
		}
		return di < dj
	})
}
