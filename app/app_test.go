package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/esportivo/app/shared/observability"
	"github.com/Black-And-White-Club/esportivo/config"
	"github.com/Black-And-White-Club/esportivo/internal/devapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeAlerter struct {
	messages []string
}

func (f *fakeAlerter) Alert(_ context.Context, _, message string) {
	f.messages = append(f.messages, message)
}

func newDevServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := devapi.New(config.DevAPIConfig{JWTSecret: "app-test", LoginRate: 100, LoginBurst: 100, Seed: 3}, nil, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(srv *httptest.Server, storage config.StorageConfig) *config.Config {
	return &config.Config{
		API:     config.APIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second},
		Storage: storage,
	}
}

func TestNewApp_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	srv := newDevServer(t)
	cfg := testConfig(srv, config.StorageConfig{Backend: "file", Path: filepath.Join(t.TempDir(), "session.yaml")})

	first, err := NewApp(ctx, cfg, observability.NewNoop(), &fakeAlerter{})
	require.NoError(t, err)
	svc := first.Session.SessionService
	assert.False(t, svc.Loading())
	assert.False(t, svc.IsAuthenticated())

	_, err = svc.SignIn(ctx, devapi.MemberLogin, devapi.MemberPass)
	require.NoError(t, err)
	clubs, err := first.Clubs.ListClubs(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.SelectClub(ctx, &clubs[1]))
	want := svc.State()
	require.NoError(t, first.Close())

	second, err := NewApp(ctx, cfg, observability.NewNoop(), &fakeAlerter{})
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, want, second.Session.SessionService.State())

	me, err := second.Session.Auth.Me(ctx)
	require.NoError(t, err, "restored token authorizes the wired authenticator")
	assert.Equal(t, want.User.ID, me.ID)
	assert.Equal(t, want.User.Email, me.Email)

	card, err := second.Membership.Card(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.User.Name, card.HolderName)
}

func TestNewApp_AuditsSessionEvents(t *testing.T) {
	ctx := context.Background()
	srv := newDevServer(t)
	logs := &lockedBuffer{}
	obs := observability.New(observability.Config{LogLevel: "debug", Output: logs})

	a, err := NewApp(ctx, testConfig(srv, config.StorageConfig{Backend: "memory"}), obs, &fakeAlerter{})
	require.NoError(t, err)
	defer a.Close()
	a.Session.SessionService.SignOut(ctx)

	assert.Eventually(t, func() bool {
		out := logs.String()
		return strings.Contains(out, "msg=\"Session event\" service=esportivo topic=session.restored.v1") &&
			strings.Contains(out, "msg=\"Session event\" service=esportivo topic=session.signed_out.v1")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewApp_MetricsEnabled(t *testing.T) {
	ctx := context.Background()
	srv := newDevServer(t)
	obs := observability.New(observability.Config{LogLevel: "error", MetricsEnabled: true, Output: &bytes.Buffer{}})

	a, err := NewApp(ctx, testConfig(srv, config.StorageConfig{Backend: "memory"}), obs, &fakeAlerter{})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Clubs.ListClubs(ctx)
	require.NoError(t, err)
	families, err := obs.Registry.Metrics.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewApp_SignInFailureAlerts(t *testing.T) {
	ctx := context.Background()
	alerter := &fakeAlerter{}
	a, err := NewApp(ctx, testConfig(newDevServer(t), config.StorageConfig{Backend: "memory"}), observability.NewNoop(), alerter)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Session.SessionService.SignIn(ctx, devapi.MemberLogin, "nope")
	require.Error(t, err)
	assert.Equal(t, []string{"Credenciais inválidas."}, alerter.messages)
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, _, err := openBackend(context.Background(), config.StorageConfig{Backend: "sqlite"}, nil)
	assert.Error(t, err)
}

func TestOpenBackend_RedisBadURL(t *testing.T) {
	_, _, err := openBackend(context.Background(), config.StorageConfig{
		Backend: "redis",
		Redis:   config.RedisConfig{URL: "memcached://localhost:11211"},
	}, nil)
	assert.Error(t, err)
}
