package storage_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	sessionservice "github.com/Black-And-White-Club/esportivo/app/modules/session/application"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/pgstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func exerciseBackend(t *testing.T, backend storage.Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := backend.Get(ctx, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, backend.Set(ctx, storage.KeyToken, "first"))
	require.NoError(t, backend.Set(ctx, storage.KeyToken, "second"))
	got, err := backend.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	user := `{"id":1,"name":"Ana","email":"ana@clube.com.br"}`
	require.NoError(t, backend.Set(ctx, storage.KeyUser, user))
	got, err = backend.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NoError(t, backend.Delete(ctx, storage.KeyToken))
	require.NoError(t, backend.Delete(ctx, storage.KeyToken))
	_, err = backend.Get(ctx, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err = backend.Get(ctx, storage.KeyUser)
	require.NoError(t, err, "entries are independent")
	assert.Equal(t, user, got)
	require.NoError(t, backend.Delete(ctx, storage.KeyUser))
}

func TestPostgresBackend(t *testing.T) {
	exerciseBackend(t, pgstore.New(pgDB))
}

func TestNatsBackend(t *testing.T) {
	exerciseBackend(t, openNats(t, "esportivo_contract"))
}

func TestRedisBackend(t *testing.T) {
	exerciseBackend(t, openRedis(t, "contract:"))
}

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, identifier, password string) (*sessionservice.LoginResult, error) {
	return &sessionservice.LoginResult{
		AccessToken: "tok-" + strings.ToLower(identifier),
		User:        &sessiondomain.User{ID: 42, Name: "Ana", Email: identifier},
	}, nil
}

type bearerRecorder struct{ token string }

func (b *bearerRecorder) SetBearer(token string) { b.token = token }
func (b *bearerRecorder) ClearBearer()           { b.token = "" }

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		backend func(t *testing.T) storage.Backend
	}{
		{
			name:    "postgres",
			backend: func(t *testing.T) storage.Backend { return pgstore.New(pgDB) },
		},
		{
			name:    "nats",
			backend: func(t *testing.T) storage.Backend { return openNats(t, "esportivo_restart") },
		},
		{
			name:    "redis",
			backend: func(t *testing.T) storage.Backend { return openRedis(t, "restart:") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewStore(tt.backend(t), discardLogger())
			bearer := &bearerRecorder{}
			first := sessionservice.NewSessionService(store, stubAuth{}, bearer, nil, nil, discardLogger(), nil)
			require.NoError(t, first.Init(ctx))

			_, err := first.SignIn(ctx, "ana@clube.com.br", "segredo")
			require.NoError(t, err)
			club := &sessiondomain.Club{ID: 3, Name: "Clube Azul", Slug: "clube-azul"}
			require.NoError(t, first.SelectClub(ctx, club))

			restartedBearer := &bearerRecorder{}
			restarted := sessionservice.NewSessionService(
				storage.NewStore(tt.backend(t), discardLogger()),
				stubAuth{}, restartedBearer, nil, nil, discardLogger(), nil,
			)
			require.NoError(t, restarted.Init(ctx))
			assert.Equal(t, first.State(), restarted.State())
			assert.Equal(t, "tok-ana@clube.com.br", restartedBearer.token)

			restarted.SignOut(ctx)
			token, ok := store.Token(ctx)
			assert.False(t, ok)
			assert.Empty(t, token)
			require.NotNil(t, restarted.SelectedClub())
			assert.Equal(t, int64(3), restarted.SelectedClub().ID)
			require.NoError(t, restarted.SelectClub(ctx, nil))
		})
	}
}
