package session

import (
	"context"

	sessionservice "github.com/Black-And-White-Club/esportivo/app/modules/session/application"
	"github.com/Black-And-White-Club/esportivo/app/modules/session/infrastructure/authapi"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/Black-And-White-Club/esportivo/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the session module.
type Module struct {
	SessionService sessionservice.Service
	Auth           *authapi.Impl
	observability  observability.Observability
}

// NewSessionModule wires the session service to the store, the shared HTTP
// client and the event publisher. The session is not restored until Init.
func NewSessionModule(
	ctx context.Context,
	obs observability.Observability,
	store sessionservice.KVStore,
	client *apiclient.Client,
	alerter sessionservice.Alerter,
	publisher message.Publisher,
) *Module {
	logger := obs.Provider.Logger
	logger.DebugContext(ctx, "session.NewSessionModule initializing")

	auth := authapi.New(client)
	service := sessionservice.NewSessionService(
		store,
		auth,
		client,
		alerter,
		publisher,
		logger,
		obs.Registry.Tracer,
	)

	return &Module{
		SessionService: service,
		Auth:           auth,
		observability:  obs,
	}
}

// Init restores the persisted session.
func (m *Module) Init(ctx context.Context) error {
	return m.SessionService.Init(ctx)
}
