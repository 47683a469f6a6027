package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fotopista/admin-api/internal/domain"
	identityport "github.com/fotopista/admin-api/internal/ports/out/identity"
)

// Provider is an in-memory implementation of identity.Provider. It backs
// service tests and the dev provider mode; it is safe for concurrent use.
type Provider struct {
	mu      sync.Mutex
	users   map[domain.UserID]identityport.Account
	byEmail map[string]domain.UserID
	tokens  map[string]domain.UserID

	// CreateErr forces CreateUser failures; LinkErr forces GenerateLink
	// failures. EmptyLinkURL makes GenerateLink succeed with no URL, which
	// real providers have been observed to do.
	CreateErr    error
	LinkErr      error
	EmptyLinkURL bool

	newID func() domain.UserID
}

var _ identityport.Provider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{
		users:   make(map[domain.UserID]identityport.Account),
		byEmail: make(map[string]domain.UserID),
		tokens:  make(map[string]domain.UserID),
		newID:   func() domain.UserID { return domain.UserID(uuid.NewString()) },
	}
}

// AddUser seeds an account and returns its id.
func (p *Provider) AddUser(email string, md map[string]any) domain.UserID {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.newID()
	p.users[id] = identityport.Account{ID: id, Email: email, EmailConfirmed: true, Metadata: md}
	p.byEmail[domain.NormalizeEmail(email)] = id
	return id
}

// AddToken binds an access token to an account.
func (p *Provider) AddToken(token string, id domain.UserID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = id
}

// Account returns the stored account, when present.
func (p *Provider) Account(id domain.UserID) (identityport.Account, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.users[id]
	return a, ok
}

func (p *Provider) ResolveIdentity(ctx context.Context, accessToken string) (identityport.Identity, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok := p.tokens[accessToken]
	if !ok {
		return identityport.Identity{}, identityport.ErrInvalidToken
	}
	a := p.users[id]
	return identityport.Identity{ID: a.ID, Email: a.Email}, nil
}

func (p *Provider) CreateUser(ctx context.Context, in identityport.CreateUserInput) (identityport.Account, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.CreateErr != nil {
		return identityport.Account{}, p.CreateErr
	}
	key := domain.NormalizeEmail(in.Email)
	if _, exists := p.byEmail[key]; exists {
		return identityport.Account{}, fmt.Errorf("create user %s: %w", in.Email, identityport.ErrEmailExists)
	}

	id := p.newID()
	a := identityport.Account{ID: id, Email: in.Email, EmailConfirmed: in.EmailConfirm, Metadata: in.Metadata}
	p.users[id] = a
	p.byEmail[key] = id
	return a, nil
}

func (p *Provider) GetUser(ctx context.Context, id domain.UserID) (identityport.Account, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.users[id]
	if !ok {
		return identityport.Account{}, identityport.ErrUserNotFound
	}
	return a, nil
}

func (p *Provider) UpdateUserMetadata(ctx context.Context, id domain.UserID, md map[string]any) (identityport.Account, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.users[id]
	if !ok {
		return identityport.Account{}, identityport.ErrUserNotFound
	}
	a.Metadata = md
	p.users[id] = a
	return a, nil
}

func (p *Provider) GenerateLink(ctx context.Context, in identityport.LinkInput) (identityport.Link, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.LinkErr != nil {
		return identityport.Link{}, p.LinkErr
	}
	id, ok := p.byEmail[domain.NormalizeEmail(in.Email)]
	if !ok {
		return identityport.Link{}, identityport.ErrUserNotFound
	}
	if p.EmptyLinkURL {
		return identityport.Link{UserID: id}, nil
	}

	url := fmt.Sprintf("https://idp.local/auth/v1/verify?token=%s&type=magiclink", uuid.NewString())
	if in.RedirectTo != "" {
		url += "&redirect_to=" + in.RedirectTo
	}
	return identityport.Link{UserID: id, URL: url}, nil
}
