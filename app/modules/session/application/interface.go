package sessionservice

import (
	"context"

	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
)

// Service is the single authority for who is signed in and which club is
// selected. Implementations are safe for concurrent use.
type Service interface {
	// Init restores the session from persistent storage. It runs once; later
	// calls are no-ops. It never touches the network.
	Init(ctx context.Context) error

	// SignIn authenticates against the remote API and persists the session.
	SignIn(ctx context.Context, identifier, password string) (*sessiondomain.User, error)

	// SignOut forgets the user and token. The selected club is kept.
	SignOut(ctx context.Context)

	// SelectClub scopes the session to club, or clears the scope when nil.
	SelectClub(ctx context.Context, club *sessiondomain.Club) error

	CurrentUser() *sessiondomain.User
	SelectedClub() *sessiondomain.Club
	IsAuthenticated() bool
	Loading() bool
	State() sessiondomain.State
}

// LoginResult is what the authentication endpoint returns.
type LoginResult struct {
	User        *sessiondomain.User
	AccessToken string
}

// Authenticator calls the remote authentication endpoint.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
}

// BearerSetter maintains the HTTP client's default credential.
type BearerSetter interface {
	SetBearer(token string)
	ClearBearer()
}

// Alerter shows a blocking, user-visible message.
type Alerter interface {
	Alert(ctx context.Context, title, message string)
}

// KVStore is the fail-silent persistent store.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}
