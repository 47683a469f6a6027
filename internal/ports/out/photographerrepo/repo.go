package photographerrepo

import (
	"context"
	"time"

	"github.com/fotopista/admin-api/internal/domain"
)

// Profile is the persistence shape used by the photographer directory.
// It is an internal record, not an HTTP DTO.
type Profile struct {
	UserID domain.UserID
	// DisplayName is the photographer's public directory name.
	DisplayName string
	// Bio is optional free text; nil means unset.
	Bio *string
	// Location is an optional home base (city/region); nil means unset.
	Location *string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted photographer profiles.
//
// ListActive returns results ordered by DisplayName ascending (ties broken
// by UserID) to keep directory output deterministic.
type Repository interface {
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error

	GetByUser(ctx context.Context, id domain.UserID) (Profile, error)

	ListActive(ctx context.Context) ([]Profile, error)
}
