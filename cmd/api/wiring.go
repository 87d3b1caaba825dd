package main

import (
	"fmt"

	"pet-clinic-roster/internal/adapters/auth/odin"
	mem "pet-clinic-roster/internal/adapters/storage/memory"
	pg "pet-clinic-roster/internal/adapters/storage/postgres"
	"pet-clinic-roster/internal/adapters/storage/rest"
	"pet-clinic-roster/internal/config"
	"pet-clinic-roster/internal/domain/roster"
	"pet-clinic-roster/internal/platform/logger"
	"pet-clinic-roster/internal/platform/metrics"
	"pet-clinic-roster/internal/ports/auth"

	"golang.org/x/text/language"
)

// app agrupa lo que comparten los comandos.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	store    roster.RecordStore
	verifier auth.AuthVerifier
	metrics  *metrics.Roster
	locale   language.Tag

	closers []func() error
}

func newApp(envFile string) (*app, error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return nil, err
	}
	locale, err := cfg.Language()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.LogLevel),
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    cfg.AppName,
		}),
		metrics: metrics.New(),
		locale:  locale,
	}

	if err := a.openStore(); err != nil {
		a.close()
		return nil, err
	}

	if cfg.AuthEnabled() {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.OdinBaseURL,
			APIKey:  cfg.OdinAPIKey,
			Timeout: cfg.BackendTimeout,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("odin: %w", err)
		}
		a.verifier = odin.NewVerifier(client)
	} else {
		a.log.Warn("auth: ODIN_BASE_URL not set, trusting X-Debug-User-* headers", nil)
	}

	return a, nil
}

func (a *app) openStore() error {
	switch a.cfg.Store {
	case config.StorePostgres:
		db, err := pg.Open(a.cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.store = pg.NewPetsRepo(db)

	case config.StoreREST:
		s, err := rest.NewStore(rest.Config{
			BaseURL: a.cfg.BackendURL,
			APIKey:  a.cfg.BackendAPIKey,
			Timeout: a.cfg.BackendTimeout,
		})
		if err != nil {
			return err
		}
		a.store = s

	default:
		s := mem.NewPetStore()
		if a.cfg.SeedFile != "" {
			n, err := mem.LoadFixtureFile(s, a.cfg.SeedFile)
			if err != nil {
				return fmt.Errorf("seed %s: %w", a.cfg.SeedFile, err)
			}
			a.log.Info("memory store seeded", map[string]any{"file": a.cfg.SeedFile, "pets": n})
		}
		a.store = s
	}

	a.log.Info("record store ready", map[string]any{"store": a.cfg.Store})
	return nil
}

func (a *app) service() *roster.Service {
	return roster.NewService(a.store, roster.Options{
		Logger:   a.log.With(map[string]any{"component": "roster"}),
		Recorder: a.metrics,
		Locale:   a.locale,
	})
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", map[string]any{"error": err})
		}
	}
	a.closers = nil
	logger.Sync(a.log)
}
