package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/pgstore"
	"github.com/Black-And-White-Club/esportivo/config"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the postgres key-value store schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.StringFlag{Name: "dsn", Usage: "postgres DSN, overrides storage.postgres.dsn"},
		},
		Commands: []*cli.Command{
			migrationCommand("init", "create migration tables", func(c *cli.Context, m *migrate.Migrator) error {
				return m.Init(c.Context)
			}),
			migrationCommand("up", "apply pending migrations", func(c *cli.Context, m *migrate.Migrator) error {
				group, err := m.Migrate(c.Context)
				if err != nil {
					return err
				}
				if group.IsZero() {
					fmt.Println("No new migrations to run")
					return nil
				}
				fmt.Printf("Migrated to %s\n", group)
				return nil
			}),
			migrationCommand("rollback", "roll back the last migration group", func(c *cli.Context, m *migrate.Migrator) error {
				group, err := m.Rollback(c.Context)
				if err != nil {
					return err
				}
				if group.IsZero() {
					fmt.Println("No groups to roll back")
					return nil
				}
				fmt.Printf("Rolled back %s\n", group)
				return nil
			}),
			migrationCommand("status", "print migrations status", func(c *cli.Context, m *migrate.Migrator) error {
				ms, err := m.MigrationsWithStatus(c.Context)
				if err != nil {
					return err
				}
				fmt.Printf("Migrations: %s\n", ms)
				fmt.Printf("Applied: %s\n", ms.Applied())
				fmt.Printf("Unapplied: %s\n", ms.Unapplied())
				return nil
			}),
			migrationCommand("create_go", "create a Go migration", func(c *cli.Context, m *migrate.Migrator) error {
				if c.NArg() == 0 {
					return fmt.Errorf("migration name is required")
				}
				mf, err := m.CreateGoMigration(c.Context, strings.Join(c.Args().Slice(), "_"))
				if err != nil {
					return err
				}
				fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
				return nil
			}),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// migrationCommand opens the configured database around run.
func migrationCommand(name, usage string, run func(*cli.Context, *migrate.Migrator) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(c *cli.Context) error {
			dsn := c.String("dsn")
			if dsn == "" {
				cfg, err := config.LoadConfig(c.String("config"))
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				dsn = cfg.Storage.Postgres.DSN
			}
			if dsn == "" {
				return fmt.Errorf("no postgres DSN configured")
			}

			db := pgstore.Open(dsn)
			defer db.Close()
			return run(c, pgstore.NewMigrator(db))
		},
	}
}
