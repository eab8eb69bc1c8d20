package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Black-And-White-Club/esportivo/app"
	championshipservice "github.com/Black-And-White-Club/esportivo/app/modules/championship/application"
	"github.com/Black-And-White-Club/esportivo/app/modules/championship/export"
	matchservice "github.com/Black-And-White-Club/esportivo/app/modules/match/application"
	sessionservice "github.com/Black-And-White-Club/esportivo/app/modules/session/application"
	shopservice "github.com/Black-And-White-Club/esportivo/app/modules/shop/application"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/Black-And-White-Club/esportivo/app/shared/observability"
	"github.com/Black-And-White-Club/esportivo/config"
	"github.com/urfave/cli/v2"
)

var (
	errNotSignedIn = errors.New("not signed in")
	// errAlerted marks failures the user already saw as an alert.
	errAlerted = errors.New("already alerted")
)

// stderrAlerter shows session alerts on the error stream.
type stderrAlerter struct {
	w io.Writer
}

func (a stderrAlerter) Alert(_ context.Context, title, message string) {
	fmt.Fprintf(a.w, "%s: %s\n", title, message)
}

// runner owns the app for the duration of one command.
type runner struct {
	out    io.Writer
	errOut io.Writer
	app    *app.App
}

func newCLI(out, errOut io.Writer) *cli.App {
	r := &runner{out: out, errOut: errOut}
	return &cli.App{
		Name:      "esportivo",
		Usage:     "club championships, live scores, store and membership card",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.StringFlag{Name: "api-url", Usage: "override api.base_url"},
			&cli.BoolFlag{Name: "ephemeral", Usage: "keep the session in memory only"},
		},
		Before: r.start,
		After:  r.stop,
		Commands: []*cli.Command{
			r.loginCommand(),
			r.logoutCommand(),
			r.whoamiCommand(),
			r.clubsCommand(),
			r.championshipsCommand(),
			r.matchesCommand(),
			r.teamsCommand(),
			r.shopCommand(),
			r.cardCommand(),
		},
	}
}

func (r *runner) start(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if v := c.String("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if c.Bool("ephemeral") {
		cfg.Storage.Backend = "memory"
	}

	obs := observability.New(observability.Config{
		LogLevel:       cfg.Observability.LogLevel,
		LogFormat:      cfg.Observability.LogFormat,
		MetricsEnabled: cfg.Observability.MetricsEnabled,
		Environment:    cfg.Observability.Environment,
		Output:         r.errOut,
	})
	r.app, err = app.NewApp(c.Context, cfg, obs, stderrAlerter{w: r.errOut})
	return err
}

func (r *runner) stop(*cli.Context) error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

func (r *runner) session() sessionservice.Service {
	return r.app.Session.SessionService
}

// selectedClubID is zero when no club is selected; the services report that.
func (r *runner) selectedClubID() int64 {
	if club := r.session().SelectedClub(); club != nil {
		return club.ID
	}
	return 0
}

func (r *runner) requireSignIn() error {
	if !r.session().IsAuthenticated() {
		return errNotSignedIn
	}
	return nil
}

// userMessage renders err the way a screen would: server text first, then a
// message for the local failures, then the generic one.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errAlerted):
		return ""
	case errors.Is(err, errNotSignedIn):
		return "Entre com sua conta primeiro (esportivo login)."
	case errors.Is(err, championshipservice.ErrNoClub), errors.Is(err, shopservice.ErrNoClub):
		return "Selecione um clube primeiro (esportivo clubs select)."
	case errors.Is(err, matchservice.ErrUnrecognizedTime):
		return "Não entendi o horário da partida."
	case errors.Is(err, matchservice.ErrKickoffInPast):
		return "O horário da partida precisa ser no futuro."
	case errors.Is(err, export.ErrNoStandings):
		return "Ainda não há classificação para este campeonato."
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiclient.UserMessage(err, "")
	}
	if errors.Is(err, apiclient.ErrTimeout) || errors.Is(err, apiclient.ErrInvalidResponse) || errors.Is(err, apiclient.ErrResponseTooLarge) {
		return apiclient.GenericErrorMessage
	}
	return err.Error()
}
