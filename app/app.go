// Package app wires the client: storage, HTTP client, session and the
// screen services.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/esportivo/app/eventbus"
	championshipservice "github.com/Black-And-White-Club/esportivo/app/modules/championship/application"
	clubservice "github.com/Black-And-White-Club/esportivo/app/modules/club/application"
	matchservice "github.com/Black-And-White-Club/esportivo/app/modules/match/application"
	membershipservice "github.com/Black-And-White-Club/esportivo/app/modules/membership/application"
	rosterservice "github.com/Black-And-White-Club/esportivo/app/modules/roster/application"
	"github.com/Black-And-White-Club/esportivo/app/modules/session"
	sessionservice "github.com/Black-And-White-Club/esportivo/app/modules/session/application"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	shopservice "github.com/Black-And-White-Club/esportivo/app/modules/shop/application"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/filestore"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/memstore"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/natskv"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/pgstore"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/redisstore"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/Black-And-White-Club/esportivo/app/shared/observability"
	"github.com/Black-And-White-Club/esportivo/config"
	"github.com/ThreeDotsLabs/watermill/message"
)

// App holds every long-lived component of the client.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Store         *storage.Store
	Client        *apiclient.Client
	EventBus      *eventbus.EventBus
	Session       *session.Module

	Clubs         clubservice.Service
	Championships championshipservice.Service
	Matches       matchservice.Service
	Roster        rosterservice.Service
	Shop          shopservice.Service
	Membership    membershipservice.Service

	closers []func() error
}

// NewApp builds the client from cfg and restores the persisted session.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability, alerter sessionservice.Alerter) (*App, error) {
	logger := obs.Provider.Logger
	app := &App{Config: cfg, Observability: obs}

	backend, closeBackend, err := openBackend(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	if closeBackend != nil {
		app.closers = append(app.closers, closeBackend)
	}
	app.Store = storage.NewStore(backend, logger)

	var metrics apiclient.Metrics
	if obs.Registry.Metrics != nil {
		metrics, err = apiclient.NewPrometheusMetrics(obs.Registry.Metrics)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register client metrics: %w", err)
		}
	}
	app.Client, err = apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, app.Store, logger, obs.Registry.Tracer, metrics)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	app.EventBus = eventbus.NewEventBus(logger)
	app.closers = append(app.closers, app.EventBus.Close)
	if err := app.auditSessionEvents(ctx); err != nil {
		app.Close()
		return nil, err
	}

	app.Session = session.NewSessionModule(ctx, obs, app.Store, app.Client, alerter, app.EventBus)
	if err := app.Session.Init(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	app.Clubs = clubservice.NewClubService(app.Client, logger)
	app.Championships = championshipservice.NewChampionshipService(app.Client, logger)
	app.Matches = matchservice.NewMatchService(app.Client, matchservice.NewKickoffParser(time.Local), nil, logger)
	app.Roster = rosterservice.NewRosterService(app.Client, logger)
	app.Shop = shopservice.NewShopService(app.Client, logger)
	app.Membership = membershipservice.NewMembershipService(app.Client, logger)
	return app, nil
}

// openBackend selects the storage backend named in cfg. The returned closer
// may be nil.
func openBackend(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storage.Backend, func() error, error) {
	switch cfg.Backend {
	case "memory":
		return memstore.New(), nil, nil
	case "file":
		return filestore.New(cfg.Path), nil, nil
	case "nats":
		kv, err := natskv.Open(ctx, natskv.Options{
			URL:      cfg.NATS.URL,
			Bucket:   cfg.NATS.Bucket,
			NkeySeed: cfg.NATS.NkeySeed,
			Name:     observability.ServiceName,
		})
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	case "postgres":
		db := pgstore.Open(cfg.Postgres.DSN)
		if err := pgstore.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.DebugContext(ctx, "Postgres storage ready")
		return pgstore.New(db), db.Close, nil
	case "redis":
		rs, err := redisstore.Open(ctx, redisstore.Options{URL: cfg.Redis.URL, Prefix: cfg.Redis.Prefix})
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// auditSessionEvents logs every session transition.
func (app *App) auditSessionEvents(ctx context.Context) error {
	logger := app.Observability.Provider.Logger
	topics := []string{
		sessiondomain.SessionRestoredV1,
		sessiondomain.SessionSignedInV1,
		sessiondomain.SessionSignedOutV1,
		sessiondomain.SessionClubSelectedV1,
		sessiondomain.SessionClubClearedV1,
	}
	for _, topic := range topics {
		err := app.EventBus.Subscribe(ctx, topic, func(ctx context.Context, msg *message.Message) error {
			logger.DebugContext(ctx, "Session event",
				slog.String("topic", topic),
				slog.String("message_id", msg.UUID),
				slog.String("payload", string(msg.Payload)),
			)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases the event bus and the storage connection.
func (app *App) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}
