package config

import (
	"fmt"
	"slices"
	"strings"
)

var knownRoles = []string{"admin", "manager", "staff"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for storage driver %q", c.Storage.Driver)
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
	case StorageDriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("storage.sqlite_path is required for storage driver %q", c.Storage.Driver)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("storage.driver must be one of postgres, memory, sqlite (got %q)", c.Storage.Driver)
	}

	if err := c.Seeding.validate(); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	roles := c.Lifecycle.CloseRoles()
	if len(roles) == 0 {
		return fmt.Errorf("lifecycle.close_roles must list at least one role")
	}
	for _, r := range roles {
		if !slices.Contains(knownRoles, r) {
			return fmt.Errorf("lifecycle.close_roles: unknown role %q", r)
		}
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if c.Tracing.Enabled && c.Tracing.Exporter != "stdout" && c.Tracing.Exporter != "none" {
		return fmt.Errorf("tracing.exporter must be stdout or none (got %q)", c.Tracing.Exporter)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (s SeedingConfig) validate() error {
	offsets := map[string]int64{
		"statement_of_affairs": int64(s.StatementOfAffairs),
		"tax_filing":           int64(s.TaxFiling),
		"document_review":      int64(s.DocumentReview),
		"initial_meeting":      int64(s.InitialMeeting),
	}
	for name, v := range offsets {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	return nil
}
