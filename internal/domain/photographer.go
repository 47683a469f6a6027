package domain

import "time"

// Photographer is a public directory entry for a photographer account.
type Photographer struct {
	UserID      UserID
	DisplayName string
	// Bio is optional free text; nil means unset.
	Bio *string
	// Location is an optional home base; nil means unset.
	Location *string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
