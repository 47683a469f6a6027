package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider selection for the identity-provider client.
const (
	ProviderSupabase = "supabase"
	// ProviderDev swaps in the in-memory provider for local workflows
	// where standing up a real project is overkill. Do NOT use this in
	// production deployments.
	ProviderDev = "dev"
)

// Storage backend selection for the admin/role/profile stores.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the process-wide configuration, constructed once at startup and
// passed into components explicitly. Operation logic never reads ambient
// environment state.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	ProviderMode string `env:"PROVIDER_MODE" envDefault:"supabase"`

	// SupabaseURL is the identity provider base URL, e.g. https://xyz.supabase.co.
	SupabaseURL string `env:"SUPABASE_URL"`
	// ServiceRoleKey is the privileged service credential used for admin calls.
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`

	ProviderHTTPTimeout time.Duration `env:"PROVIDER_HTTP_TIMEOUT" envDefault:"10s"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL    string `env:"DATABASE_URL"`

	// AdminEmails seeds the in-memory authorization store. The postgres
	// backend reads the admins table instead (see cmd/seedadmin).
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`
}

// Load parses configuration from environment variables and validates it.
// Missing provider credentials are a startup-time fatal condition, not a
// per-request error.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.ProviderMode {
	case ProviderSupabase:
		if c.SupabaseURL == "" || c.ServiceRoleKey == "" {
			return fmt.Errorf("missing required env vars: SUPABASE_URL, SUPABASE_SERVICE_ROLE_KEY")
		}
	case ProviderDev:
		// No remote provider; nothing to require.
	default:
		return fmt.Errorf("PROVIDER_MODE must be %q or %q, got %q", ProviderSupabase, ProviderDev, c.ProviderMode)
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageBackend)
	}

	return nil
}
