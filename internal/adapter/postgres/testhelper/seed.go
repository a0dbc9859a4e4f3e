package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser registers a staff principal and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.Principal {
	t.Helper()

	suffix := uniqueSuffix()
	p := domain.Principal{
		ID:    uuid.New(),
		Name:  "Test User " + suffix,
		Email: "testuser-" + suffix + "@example.com",
		Role:  domain.RoleStaff,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, role) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.Email, string(p.Role),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return p
}

// SeedCase inserts an ACTIVE case at version 1 with no children.
func SeedCase(t *testing.T, pool *pgxpool.Pool) domain.Case {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Case{
		ID:           uuid.New(),
		CaseType:     "Liquidation " + uniqueSuffix(),
		Jurisdiction: "NSW",
		OpenedAt:     now,
		Status:       domain.CaseStatusActive,
		Version:      domain.InitialVersion,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO cases (id, case_type, jurisdiction, opened_at, status, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CaseType, c.Jurisdiction, c.OpenedAt, string(c.Status), c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCase: %v", err)
	}
	return c
}
