package main

import (
	"context"
	"fmt"

	"github.com/mcdev12/clubadmin/go/clients/supabase_client"
	"github.com/mcdev12/clubadmin/go/internal/admin"
	"github.com/mcdev12/clubadmin/go/internal/backend"
	"github.com/mcdev12/clubadmin/go/internal/events"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Admin     *admin.Service
	Readiness *ReadinessChecker

	closers []func()
}

// Close releases the database pool and NATS connection, if any.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func setupServices(ctx context.Context, cfg *Config) (*Services, error) {
	// Wire up dependency injection chain
	// Client layer → Backend layer → App layer → Service layer
	services := &Services{Readiness: &ReadinessChecker{dataBackend: cfg.DataBackend}}

	supabase := supabase_client.NewSupabaseClient(cfg.SupabaseURL, cfg.ServiceKey, cfg.RequestTimeout)
	objects := backend.NewRESTObjects(supabase)

	var rows backend.RowStore
	switch cfg.DataBackend {
	case BackendPostgres:
		pool, err := setupDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		services.closers = append(services.closers, pool.Close)
		services.Readiness.db = pool
		rows = backend.NewPostgresRows(pool)
	default:
		rows = backend.NewRESTRows(supabase)
	}

	var notifier admin.Notifier = events.Nop{}
	if cfg.NATSURL != "" {
		natsCfg := events.DefaultNATSConfig()
		natsCfg.URL = cfg.NATSURL
		natsCfg.SubjectPrefix = cfg.NATSPrefix
		n, err := events.NewNATSNotifier(natsCfg)
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("setup change notifier: %w", err)
		}
		services.closers = append(services.closers, func() { _ = n.Close() })
		notifier = n
		services.Readiness.nats = n
		log.Info().Str("nats_url", cfg.NATSURL).Str("prefix", cfg.NATSPrefix).Msg("publishing content events")
	}

	app := admin.NewApp(
		admin.Config{
			MediaBucket:    cfg.MediaBucket,
			MediaFolder:    cfg.MediaFolder,
			TableScope:     cfg.TableScope,
			RequestTimeout: cfg.RequestTimeout,
		},
		admin.NewGate(cfg.AdminPin),
		admin.NewNormalizer(cfg.Defaults),
		backend.New(rows, objects),
		notifier,
		nil,
	)
	services.Admin = admin.NewService(app, cfg.MaxBodyBytes)

	return services, nil
}
