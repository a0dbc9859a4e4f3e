package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/caseledger-backend/internal/config"
	"github.com/heartmarshall/caseledger-backend/migrations"
)

// MigrateCmd applies the embedded PostgreSQL schema migrations.
func MigrateCmd(env *cmdEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
		Long: `Apply, roll back or inspect the embedded goose migrations.
Only the postgres storage driver has a schema; memory and sqlite need none.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), env, func(ctx context.Context, p *goose.Provider) error {
					results, err := p.Up(ctx)
					printResults(cmd.OutOrStdout(), results)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), env, func(ctx context.Context, p *goose.Provider) error {
					res, err := p.Down(ctx)
					if res != nil {
						printResults(cmd.OutOrStdout(), []*goose.MigrationResult{res})
					}
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), env, func(ctx context.Context, p *goose.Provider) error {
					statuses, err := p.Status(ctx)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), statuses)
					return nil
				})
			},
		},
	)
	return cmd
}

func withProvider(ctx context.Context, env *cmdEnv, fn func(context.Context, *goose.Provider) error) error {
	cfg, err := env.config()
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("migrate requires storage driver %q (configured: %q)", config.StorageDriverPostgres, cfg.Storage.Driver)
	}

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	return fn(ctx, provider)
}

func printResults(w io.Writer, results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no migrations to run")
		return
	}
	for _, r := range results {
		mark := color.New(color.FgGreen).Sprint("OK")
		if r.Error != nil {
			mark = color.New(color.FgRed).Sprint("FAIL")
		}
		fmt.Fprintf(w, "%-4s  %-4s  %05d  %-28s  %s\n",
			mark, r.Direction, r.Source.Version, filepath.Base(r.Source.Path), r.Duration.Round(time.Millisecond))
	}
}

func printStatus(w io.Writer, statuses []*goose.MigrationStatus) {
	applied := color.New(color.FgGreen)
	pending := color.New(color.FgYellow)
	for _, s := range statuses {
		state, when := pending.Sprint("pending"), "-"
		if s.State == goose.StateApplied {
			state, when = applied.Sprint("applied"), s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%05d  %-28s  %-7s  %s\n", s.Source.Version, filepath.Base(s.Source.Path), state, when)
	}
}
