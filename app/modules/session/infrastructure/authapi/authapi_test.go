package authapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/login", func(w http.ResponseWriter, req *http.Request) {
		var body LoginRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		switch {
		case body.Login == "ana@example.com" && body.Password == "secret":
			_, _ = w.Write([]byte(`{"user":{"id":7,"name":"Ana","email":"ana@example.com","is_admin":true},"access_token":"tok-7"}`))
		case body.Login == "broken@example.com":
			_, _ = w.Write([]byte(`{"user":{"id":8,"name":"Bia","email":"b@example.com"}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Credenciais inválidas"}`))
		}
	})
	r.Get("/api/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer tok-7" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"name":"Ana","email":"ana@example.com"}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(apiclient.Config{BaseURL: srv.URL + "/api"}, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"), nil)
	require.NoError(t, err)
	return c
}

func TestLogin(t *testing.T) {
	srv := newServer(t)
	a := New(newClient(t, srv))

	tests := []struct {
		name      string
		login     string
		password  string
		wantToken string
		wantErr   error
		wantMsg   string
	}{
		{name: "valid credentials", login: "ana@example.com", password: "secret", wantToken: "tok-7"},
		{name: "wrong password", login: "ana@example.com", password: "nope", wantMsg: "Credenciais inválidas"},
		{name: "missing token in response", login: "broken@example.com", password: "x", wantErr: apiclient.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Login(context.Background(), tt.login, tt.password)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, apiclient.UserMessage(err, ""))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, res.AccessToken)
				assert.Equal(t, int64(7), res.User.ID)
				assert.True(t, res.User.IsAdmin)
			}
		})
	}
}

func TestMe(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)
	a := New(c)

	_, err := a.Me(context.Background())
	assert.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))

	c.SetBearer("tok-7")
	user, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
}
