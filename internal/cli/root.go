// Package cli implements casectl, the operator command line for the case
// lifecycle service.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/caseledger-backend/internal/app"
	"github.com/heartmarshall/caseledger-backend/internal/config"
)

// RootCmd returns the casectl command tree.
func RootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "casectl",
		Short:   "Operate the case lifecycle service",
		Version: app.BuildVersion(),
		Long: `casectl runs operator tasks against the configured storage:
schema migrations, the overdue compliance report, principal registration
and development tokens.

Configuration is read from --config, then CONFIG_PATH, then ./config.yaml,
with environment variables taking precedence.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")

	env := &cmdEnv{configPath: &configPath}
	root.AddCommand(
		MigrateCmd(env),
		OverdueCmd(env),
		TokenCmd(env),
		UserCmd(env),
		VersionCmd(),
	)
	return root
}

// cmdEnv resolves configuration lazily so flags are parsed first.
type cmdEnv struct {
	configPath *string
}

func (e *cmdEnv) config() (*config.Config, error) {
	return config.LoadPath(*e.configPath)
}

// backend opens storage for a command. Logs go to the command's stderr.
func (e *cmdEnv) backend(ctx context.Context, cmd *cobra.Command) (*app.Backend, *config.Config, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, nil, err
	}
	b, err := app.OpenBackend(ctx, cfg, commandLogger(cmd.ErrOrStderr(), cfg.Log), nil)
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

func commandLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Level == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
