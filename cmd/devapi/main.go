package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/esportivo/app/shared/observability"
	"github.com/Black-And-White-Club/esportivo/config"
	"github.com/Black-And-White-Club/esportivo/internal/devapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "devapi",
		Usage: "serve the local stand-in club API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.StringFlag{Name: "address", Usage: "override devapi.address"},
			&cli.Int64Flag{Name: "seed", Usage: "override devapi.seed"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if v := c.String("address"); v != "" {
		cfg.DevAPI.Address = v
	}
	if c.IsSet("seed") {
		cfg.DevAPI.Seed = c.Int64("seed")
	}

	obs := observability.New(observability.Config{
		LogLevel:    c.String("log-level"),
		LogFormat:   cfg.Observability.LogFormat,
		Environment: cfg.Observability.Environment,
	})
	logger := obs.Provider.Logger.With("component", "devapi")

	server, err := devapi.New(cfg.DevAPI, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	logger.Info("Fixture accounts",
		"admin", devapi.AdminLogin,
		"member", devapi.MemberLogin,
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, cfg.DevAPI.Address)
}
