// Package devapi serves a local stand-in for the club API with generated
// fixtures, so the client can be exercised without the real backend.
package devapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/esportivo/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Server is the stand-in API.
type Server struct {
	data     *Dataset
	tokens   *TokenIssuer
	limiter  *IPRateLimiter
	metrics  *Metrics
	registry *prometheus.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a Server from the devapi settings. A nil registry gets a fresh
// one.
func New(cfg config.DevAPIConfig, logger *slog.Logger, registry *prometheus.Registry) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register devapi metrics: %w", err)
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	burst := cfg.LoginBurst
	if burst == 0 {
		burst = 5
	}
	return &Server{
		data:     NewDataset(cfg.Seed, time.Now()),
		tokens:   NewTokenIssuer(cfg.JWTSecret, ttl),
		limiter:  NewIPRateLimiter(rate.Limit(cfg.LoginRate), burst),
		metrics:  metrics,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Dataset exposes the fixtures, mainly for tests.
func (s *Server) Dataset() *Dataset {
	return s.data
}

// Handler returns the full router: the API under /api and metrics at
// /metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(s.metrics.Instrument)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusNotFound, "Registro não encontrado.")
		})

		r.With(RateLimit(s.limiter)).Post("/login", s.handleLogin)

		r.Get("/clubs", s.handleClubs)
		r.Get("/clubs/{ref}", s.handleClub)
		r.Get("/championships", s.handleChampionships)
		r.Get("/championships/{id}", s.handleChampionship)
		r.Get("/championships/{id}/standings", s.handleStandings)
		r.Get("/championships/{id}/matches", s.handleChampionshipMatches)
		r.Get("/championships/{id}/teams", s.handleTeams)
		r.Get("/matches/{id}", s.handleMatch)
		r.Get("/matches/{id}/events", s.handleEvents)
		r.Get("/teams/{id}", s.handleTeam)
		r.Get("/teams/{id}/players", s.handlePlayers)
		r.Get("/products", s.handleProducts)
		r.Get("/products/{id}", s.handleProduct)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(s.tokens))
			r.Get("/me", s.handleMe)
			r.Get("/me/orders", s.handleMyOrders)
			r.Get("/me/membership-card", s.handleCard)
			r.Post("/orders", s.handlePlaceOrder)

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Post("/championships/{id}/matches", s.handleSchedule)
				r.Patch("/matches/{id}", s.handleUpdateMatch)
				r.Post("/matches/{id}/events", s.handleAddEvent)
				r.Delete("/matches/{id}/events/{eventID}", s.handleDeleteEvent)
				r.Post("/teams/{id}/players", s.handleAddPlayer)
				r.Delete("/teams/{id}/players/{playerID}", s.handleRemovePlayer)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Stand-in API listening", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Shutting down stand-in API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
