package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/caseledger-backend/internal/app"
	"github.com/heartmarshall/caseledger-backend/internal/auth"
	"github.com/heartmarshall/caseledger-backend/internal/config"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/service/cases"
	"github.com/heartmarshall/caseledger-backend/internal/service/compliance"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

const testSecret = "casectl-test-secret-of-at-least-32-chars"

// writeConfig writes a config file for the given driver and returns its path.
func writeConfig(t *testing.T, driver string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "state.db")
	yaml := fmt.Sprintf(`
storage:
  driver: %q
  sqlite_path: %q
auth:
  jwt_secret: %q
  jwt_issuer: "casectl-test"
`, driver, dbPath, testSecret)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path, dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := RootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	want := map[string]bool{"migrate": false, "overdue": false, "token": false, "user": false, "version": false}
	for _, sub := range RootCmd().Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
			assert.NotEmpty(t, sub.Short, "%s should have a Short description", sub.Name())
		}
	}
	for name, found := range want {
		assert.True(t, found, "subcommand %q not registered", name)
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, app.BuildVersion()+"\n", out)
}

func TestTokenCmd_MintsValidToken(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, config.StorageDriverMemory)
	id := uuid.New()

	out, err := run(t, "--config", cfgPath, "token", "--user", id.String(), "--role", "manager")
	require.NoError(t, err)

	gotID, role, err := auth.NewJWTManager(testSecret, "casectl-test", time.Minute).
		ValidateToken(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "manager", role)
}

func TestTokenCmd_Errors(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, config.StorageDriverMemory)

	_, err := run(t, "--config", cfgPath, "token", "--role", "root")
	assert.ErrorIs(t, err, auth.ErrInvalidRole)

	_, err = run(t, "--config", cfgPath, "token", "--user", "nope")
	assert.Error(t, err)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "token")
	assert.Error(t, err)
}

func TestUserCmd_AddThenListOnSQLite(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, config.StorageDriverSQLite)

	out, err := run(t, "--config", cfgPath, "user", "add", "--name", "Dana Reyes", "--email", "Dana@Example.com", "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "dana@example.com")

	_, err = run(t, "--config", cfgPath, "user", "add", "--name", "Dup", "--email", "dana@example.com")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	out, err = run(t, "--config", cfgPath, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "dana@example.com")
	assert.Contains(t, out, "admin")
}

func TestOverdueCmd_ReportsSeededItem(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, config.StorageDriverSQLite)
	cfg, err := config.LoadPath(cfgPath)
	require.NoError(t, err)

	ctx := ctxutil.WithPrincipal(context.Background(), uuid.New(), "staff")
	b, err := app.OpenBackend(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)

	created, err := b.Cases.CreateCase(ctx, cases.CreateCaseInput{
		CaseType: "Liquidation", Jurisdiction: "WA", OpenedAt: time.Now().Add(-30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	due := time.Now().Add(-72 * time.Hour)
	_, err = b.Compliance.CreateItem(ctx, compliance.CreateItemInput{
		CaseID: created.Case.ID, Title: "Lodge creditor report", Mandatory: true, DueAt: &due,
	})
	require.NoError(t, err)
	b.Close()

	out, err := run(t, "--config", cfgPath, "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Lodge creditor report")
	assert.Contains(t, out, "Liquidation")
	assert.Contains(t, out, "1 overdue item(s)")
}

func TestMigrateCmd_RequiresPostgres(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, config.StorageDriverMemory)
	_, err := run(t, "--config", cfgPath, "migrate", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires storage driver")
}

func TestPrintOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(-5 * 24 * time.Hour)

	var buf bytes.Buffer
	printOverdue(&buf, nil, now)
	assert.Contains(t, buf.String(), "No overdue compliance items.")

	buf.Reset()
	printOverdue(&buf, []domain.OverdueItem{{
		Item:         domain.ComplianceItem{Title: "Tax Filing (NSW)", DueAt: &due},
		CaseType:     "Insolvency",
		Jurisdiction: "NSW",
	}}, now)
	out := buf.String()
	assert.Contains(t, out, "2025-03-05")
	assert.Contains(t, out, "5d")
	assert.Contains(t, out, "Tax Filing (NSW)")
}
