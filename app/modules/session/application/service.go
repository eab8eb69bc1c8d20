package sessionservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

// SessionService implements the Service interface.
type SessionService struct {
	store     KVStore
	auth      Authenticator
	bearer    BearerSetter
	alerter   Alerter
	publisher message.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
	validate  *validator.Validate

	// opMu serializes the lifecycle operations so memory and storage move
	// together. mu guards the fields below it.
	opMu        sync.Mutex
	mu          sync.RWMutex
	user        *sessiondomain.User
	club        *sessiondomain.Club
	loading     bool
	initialized bool
}

// NewSessionService creates a new SessionService. publisher may be nil.
func NewSessionService(
	store KVStore,
	auth Authenticator,
	bearer BearerSetter,
	alerter Alerter,
	publisher message.Publisher,
	logger *slog.Logger,
	tracer trace.Tracer,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("session")
	}
	return &SessionService{
		store:     store,
		auth:      auth,
		bearer:    bearer,
		alerter:   alerter,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		loading:   true,
	}
}

// Init restores the persisted session.
func (s *SessionService) Init(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "SessionService.Init")
	defer span.End()

	var (
		token, rawUser, rawClub string
		hasToken, hasUser       bool
		hasClub                 bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		token, hasToken = s.store.Get(gctx, storage.KeyToken)
		return nil
	})
	g.Go(func() error {
		rawUser, hasUser = s.store.Get(gctx, storage.KeyUser)
		return nil
	})
	g.Go(func() error {
		rawClub, hasClub = s.store.Get(gctx, storage.KeyClub)
		return nil
	})
	_ = g.Wait()

	var user *sessiondomain.User
	if hasToken && token != "" && hasUser {
		user = s.decodeUser(ctx, rawUser)
		if user != nil {
			s.bearer.SetBearer(token)
		}
	}
	var club *sessiondomain.Club
	if hasClub {
		club = s.decodeClub(ctx, rawClub)
	}

	s.mu.Lock()
	s.user = user
	s.club = club
	s.loading = false
	s.initialized = true
	s.mu.Unlock()

	payload := sessiondomain.SessionRestoredPayloadV1{Authenticated: user != nil}
	if user != nil {
		payload.UserID = &user.ID
	}
	if club != nil {
		payload.ClubID = &club.ID
	}
	span.SetAttributes(attribute.Bool("session.authenticated", user != nil))
	s.logger.DebugContext(ctx, "Session restored",
		slog.Bool("authenticated", user != nil),
		slog.Bool("club_selected", club != nil),
	)
	s.publish(ctx, sessiondomain.SessionRestoredV1, payload)
	return nil
}

// SignIn exchanges credentials for a token and persists the session. On
// failure the user is alerted, nothing is written and the error is returned.
func (s *SessionService) SignIn(ctx context.Context, identifier, password string) (*sessiondomain.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "SessionService.SignIn")
	defer span.End()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		s.alert(ctx, MissingCredentialsMessage)
		span.SetStatus(codes.Error, ErrMissingCredentials.Error())
		return nil, ErrMissingCredentials
	}

	result, err := s.auth.Login(ctx, identifier, password)
	if err == nil {
		err = s.checkLogin(result)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Sign-in failed", slog.Any("error", err))
		s.alert(ctx, apiclient.UserMessage(err, LoginFailedMessage))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("sign in: %w", err)
	}

	user := result.User.Clone()
	encoded, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	s.bearer.SetBearer(result.AccessToken)
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.store.Set(ctx, storage.KeyToken, result.AccessToken)
	s.store.Set(ctx, storage.KeyUser, string(encoded))

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	s.logger.InfoContext(ctx, "Signed in",
		slog.Int64("user_id", user.ID),
		slog.Bool("is_admin", user.IsAdmin),
	)
	s.publish(ctx, sessiondomain.SessionSignedInV1, sessiondomain.SessionSignedInPayloadV1{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
	return user.Clone(), nil
}

// SignOut forgets the user and token. The selected club stays in memory and
// in storage.
func (s *SessionService) SignOut(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "SessionService.SignOut")
	defer span.End()

	s.mu.Lock()
	previous := s.user
	s.user = nil
	club := s.club
	s.mu.Unlock()

	s.store.Remove(ctx, storage.KeyToken)
	s.store.Remove(ctx, storage.KeyUser)
	s.bearer.ClearBearer()

	var payload sessiondomain.SessionSignedOutPayloadV1
	if previous != nil {
		payload.UserID = &previous.ID
	}
	if club != nil {
		payload.ClubID = &club.ID
	}
	s.logger.InfoContext(ctx, "Signed out")
	s.publish(ctx, sessiondomain.SessionSignedOutV1, payload)
}

// SelectClub sets the club scope. A nil club clears it.
func (s *SessionService) SelectClub(ctx context.Context, club *sessiondomain.Club) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "SessionService.SelectClub")
	defer span.End()

	if club == nil {
		s.mu.Lock()
		previous := s.club
		s.club = nil
		s.mu.Unlock()

		s.store.Remove(ctx, storage.KeyClub)

		var payload sessiondomain.SessionClubClearedPayloadV1
		if previous != nil {
			payload.PreviousClubID = &previous.ID
		}
		s.publish(ctx, sessiondomain.SessionClubClearedV1, payload)
		return nil
	}

	if !validClub(club) {
		return ErrInvalidClub
	}
	selected := club.Clone()
	encoded, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("failed to encode club: %w", err)
	}

	s.mu.Lock()
	s.club = selected
	s.mu.Unlock()
	s.store.Set(ctx, storage.KeyClub, string(encoded))

	span.SetAttributes(attribute.Int64("club.id", selected.ID))
	s.logger.InfoContext(ctx, "Club selected",
		slog.Int64("club_id", selected.ID),
		slog.String("slug", selected.Slug),
	)
	s.publish(ctx, sessiondomain.SessionClubSelectedV1, sessiondomain.SessionClubSelectedPayloadV1{
		ClubID: selected.ID,
		Slug:   selected.Slug,
	})
	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionService) CurrentUser() *sessiondomain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// SelectedClub returns a copy of the selected club, or nil.
func (s *SessionService) SelectedClub() *sessiondomain.Club {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.club.Clone()
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// State returns a consistent snapshot.
func (s *SessionService) State() sessiondomain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sessiondomain.State{
		User:          s.user.Clone(),
		Club:          s.club.Clone(),
		Authenticated: s.user != nil,
		Loading:       s.loading,
	}
}

func (s *SessionService) checkLogin(result *LoginResult) error {
	if result == nil || result.AccessToken == "" || result.User == nil {
		return ErrInvalidLoginResponse
	}
	if err := s.validate.Struct(result.User); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLoginResponse, err)
	}
	return nil
}

func (s *SessionService) decodeUser(ctx context.Context, raw string) *sessiondomain.User {
	var user sessiondomain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.WarnContext(ctx, "Ignoring corrupt stored user", slog.Any("error", err))
		return nil
	}
	if err := s.validate.Struct(&user); err != nil {
		s.logger.WarnContext(ctx, "Ignoring invalid stored user", slog.Any("error", err))
		return nil
	}
	return &user
}

func (s *SessionService) decodeClub(ctx context.Context, raw string) *sessiondomain.Club {
	var club sessiondomain.Club
	if err := json.Unmarshal([]byte(raw), &club); err != nil {
		s.logger.WarnContext(ctx, "Ignoring corrupt stored club", slog.Any("error", err))
		return nil
	}
	if !validClub(&club) {
		s.logger.WarnContext(ctx, "Ignoring stored club without id")
		return nil
	}
	return &club
}

// validClub is the one rule shared by selection and restore: a club is
// identified by its id alone.
func validClub(club *sessiondomain.Club) bool {
	return club.ID != 0
}

func (s *SessionService) alert(ctx context.Context, message string) {
	if s.alerter == nil {
		return
	}
	s.alerter.Alert(ctx, LoginFailedTitle, message)
}

// publish emits a session event. Delivery failures are logged only.
func (s *SessionService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode session event", slog.String("topic", topic), slog.Any("error", err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if err := s.publisher.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish session event", slog.String("topic", topic), slog.Any("error", err))
	}
}
