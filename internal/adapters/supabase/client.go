package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/identity"
)

// Config configures the identity-provider client.
//
// BaseURL is the project URL (e.g. https://xyz.supabase.co); ServiceRoleKey
// is the privileged credential used for admin endpoints.
type Config struct {
	BaseURL        string
	ServiceRoleKey string

	HTTPTimeout time.Duration
}

// Client implements identity.Provider against the GoTrue HTTP API.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ identity.Provider = (*Client)(nil)

func New(cfg Config) *Client {
	return NewWithOptions(cfg, nil)
}

func NewWithOptions(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: httpClient}
}

// userPayload is the wire shape of a GoTrue user object.
type userPayload struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

func (u userPayload) toAccount() identity.Account {
	return identity.Account{
		ID:             domain.UserID(u.ID),
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmedAt != "",
		Metadata:       u.UserMetadata,
	}
}

func (c *Client) ResolveIdentity(ctx context.Context, accessToken string) (identity.Identity, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return identity.Identity{}, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return identity.Identity{}, identity.ErrInvalidToken
	}
	if status != http.StatusOK {
		return identity.Identity{}, fmt.Errorf("resolve identity: %w", providerError(status, raw))
	}
	var out userPayload
	if err := json.Unmarshal(raw, &out); err != nil {
		return identity.Identity{}, fmt.Errorf("resolve identity: decode: %w", err)
	}
	return identity.Identity{ID: domain.UserID(out.ID), Email: out.Email}, nil
}

func (c *Client) CreateUser(ctx context.Context, in identity.CreateUserInput) (identity.Account, error) {
	body := map[string]any{
		"email":         in.Email,
		"email_confirm": in.EmailConfirm,
		"user_metadata": in.Metadata,
	}
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", c.cfg.ServiceRoleKey, body)
	if err != nil {
		return identity.Account{}, err
	}
	switch status {
	case http.StatusOK, http.StatusCreated:
		var out userPayload
		if err := json.Unmarshal(raw, &out); err != nil {
			return identity.Account{}, fmt.Errorf("create user: decode: %w", err)
		}
		return out.toAccount(), nil
	case http.StatusUnprocessableEntity, http.StatusConflict:
		// GoTrue reports an already-registered address as 422 (older
		// deployments use 409).
		return identity.Account{}, fmt.Errorf("create user %s: %w", in.Email, identity.ErrEmailExists)
	default:
		return identity.Account{}, fmt.Errorf("create user: %w", providerError(status, raw))
	}
}

func (c *Client) GetUser(ctx context.Context, id domain.UserID) (identity.Account, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+string(id), c.cfg.ServiceRoleKey, nil)
	if err != nil {
		return identity.Account{}, err
	}
	if status == http.StatusNotFound {
		return identity.Account{}, identity.ErrUserNotFound
	}
	if status != http.StatusOK {
		return identity.Account{}, fmt.Errorf("get user: %w", providerError(status, raw))
	}
	var out userPayload
	if err := json.Unmarshal(raw, &out); err != nil {
		return identity.Account{}, fmt.Errorf("get user: decode: %w", err)
	}
	return out.toAccount(), nil
}

func (c *Client) UpdateUserMetadata(ctx context.Context, id domain.UserID, md map[string]any) (identity.Account, error) {
	body := map[string]any{"user_metadata": md}
	status, raw, err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+string(id), c.cfg.ServiceRoleKey, body)
	if err != nil {
		return identity.Account{}, err
	}
	if status == http.StatusNotFound {
		return identity.Account{}, identity.ErrUserNotFound
	}
	if status != http.StatusOK {
		return identity.Account{}, fmt.Errorf("update user metadata: %w", providerError(status, raw))
	}
	var out userPayload
	if err := json.Unmarshal(raw, &out); err != nil {
		return identity.Account{}, fmt.Errorf("update user metadata: decode: %w", err)
	}
	return out.toAccount(), nil
}

func (c *Client) GenerateLink(ctx context.Context, in identity.LinkInput) (identity.Link, error) {
	body := map[string]any{
		"type":  "magiclink",
		"email": in.Email,
	}
	if in.RedirectTo != "" {
		body["redirect_to"] = in.RedirectTo
	}
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/generate_link", c.cfg.ServiceRoleKey, body)
	if err != nil {
		return identity.Link{}, err
	}
	if status != http.StatusOK {
		return identity.Link{}, fmt.Errorf("generate link: %w", providerError(status, raw))
	}
	return normalizeLink(raw)
}

// do performs one JSON round-trip and returns the status code plus the raw
// response body; callers interpret both. Error payloads stay inspectable.
func (c *Client) do(ctx context.Context, method, path, bearer string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("apikey", c.cfg.ServiceRoleKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}

// providerError extracts a human-readable message from an error response.
// GoTrue variants spell the field differently across versions.
func providerError(status int, raw []byte) error {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	_ = json.Unmarshal(raw, &body)

	for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
		if m != "" {
			return fmt.Errorf("provider status %d: %s", status, m)
		}
	}
	return fmt.Errorf("provider status %d", status)
}
