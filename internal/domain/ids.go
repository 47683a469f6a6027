package domain

// UserID is the account identifier minted by the identity provider.
// We model it as an opaque string: its format is controlled by the provider.
type UserID string
