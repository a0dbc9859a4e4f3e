package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/caseledger-backend/internal/adapter/memory"
	"github.com/heartmarshall/caseledger-backend/internal/adapter/postgres"
	pgcases "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres/cases"
	pgcompliance "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres/compliance"
	pgfinancial "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres/financial"
	pghistory "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres/history"
	pgtask "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres/task"
	pguser "github.com/heartmarshall/caseledger-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/caseledger-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/caseledger-backend/internal/config"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/metrics"
	"github.com/heartmarshall/caseledger-backend/internal/service/cases"
	"github.com/heartmarshall/caseledger-backend/internal/service/compliance"
	"github.com/heartmarshall/caseledger-backend/internal/service/user"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Backend is the selected storage adapter with the services built on it.
type Backend struct {
	Driver     string
	Store      pinger
	Cases      *cases.Service
	Compliance *compliance.Service
	Users      *user.Service

	close func()
}

// Close releases the storage adapter.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// OpenBackend connects the storage driver named in cfg and wires the services.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Backend, error) {
	casesCfg := cases.Config{
		Seed:       domain.StandardSeedPolicy(seedOffsets(cfg.Seeding)),
		CloseRoles: closeRoles(cfg.Lifecycle),
		Metrics:    m,
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		var (
			tx       = postgres.NewTxManager(pool)
			caseRepo = pgcases.New(pool)
			itemRepo = pgcompliance.New(pool)
			userRepo = pguser.New(pool)
		)
		return &Backend{
			Driver: cfg.Storage.Driver,
			Store:  pool,
			Cases: cases.NewService(logger,
				caseRepo, itemRepo, pgtask.New(pool), pghistory.New(pool), pgfinancial.New(pool),
				tx, casesCfg,
			),
			Compliance: compliance.NewService(logger, caseRepo, itemRepo, tx, m),
			Users:      user.NewService(logger, userRepo),
			close:      pool.Close,
		}, nil

	case config.StorageDriverSQLite:
		st, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		b := memoryBackend(st.Store, logger, casesCfg, m)
		b.Driver = cfg.Storage.Driver
		b.Store = st
		b.close = func() {
			if err := st.Close(); err != nil {
				logger.Error("close sqlite", slog.String("error", err.Error()))
			}
		}
		return b, nil

	case config.StorageDriverMemory:
		b := memoryBackend(memory.NewStore(), logger, casesCfg, m)
		b.Driver = cfg.Storage.Driver
		return b, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func memoryBackend(st *memory.Store, logger *slog.Logger, casesCfg cases.Config, m *metrics.Metrics) *Backend {
	return &Backend{
		Store: st,
		Cases: cases.NewService(logger,
			st.Cases(), st.Items(), st.Tasks(), st.History(), st.Financials(),
			st, casesCfg,
		),
		Compliance: compliance.NewService(logger, st.Cases(), st.Items(), st, m),
		Users:      user.NewService(logger, st.Users()),
	}
}

func seedOffsets(cfg config.SeedingConfig) domain.SeedOffsets {
	return domain.SeedOffsets{
		StatementOfAffairs: cfg.StatementOfAffairs,
		TaxFiling:          cfg.TaxFiling,
		DocumentReview:     cfg.DocumentReview,
		InitialMeeting:     cfg.InitialMeeting,
	}
}

func closeRoles(cfg config.LifecycleConfig) []domain.Role {
	raw := cfg.CloseRoles()
	roles := make([]domain.Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, domain.Role(r))
	}
	return roles
}
