package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/identity"
)

// linkPayload covers both response shapes of the generate_link endpoint:
// newer deployments nest the link under properties and the account under
// user; older ones return a flat user object with action_link at top level.
type linkPayload struct {
	Properties struct {
		ActionLink string `json:"action_link"`
	} `json:"properties"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`

	ActionLink string `json:"action_link"`
	ID         string `json:"id"`
}

// normalizeLink resolves the provider response variance with a fixed
// precedence: properties.action_link before top-level action_link, and
// user.id before top-level id. An absent link is an error; callers must not
// receive an empty URL as success.
func normalizeLink(raw []byte) (identity.Link, error) {
	var p linkPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return identity.Link{}, fmt.Errorf("generate link: decode: %w", err)
	}

	url := p.Properties.ActionLink
	if url == "" {
		url = p.ActionLink
	}
	if url == "" {
		return identity.Link{}, fmt.Errorf("generate link: response carried no action link")
	}

	id := p.User.ID
	if id == "" {
		id = p.ID
	}

	return identity.Link{UserID: domain.UserID(id), URL: url}, nil
}
