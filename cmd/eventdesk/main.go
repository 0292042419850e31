// Command eventdesk serves the dashboard API and runs the admin tasks:
// schema setup, legacy migration, local database migrations and exports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/raynzz/eventdesk/app"
	"github.com/raynzz/eventdesk/app/modules/dashboard"
	"github.com/raynzz/eventdesk/app/modules/migration"
	migrationservice "github.com/raynzz/eventdesk/app/modules/migration/application"
	"github.com/raynzz/eventdesk/app/modules/schema"
	schemaservice "github.com/raynzz/eventdesk/app/modules/schema/application"
	"github.com/raynzz/eventdesk/config"
	"github.com/raynzz/eventdesk/db/bundb"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "eventdesk",
		Usage: "event and vendor dashboard backed by Directus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"EVENTDESK_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newSchemaCommand(),
			newMigrateCommand(),
			newDBCommand(),
			newExportCommand(),
			newTokenCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// adminEnv is what the admin commands share: a client authenticated with the
// admin token and a bus to report completion on.
type adminEnv struct {
	cfg    *config.Config
	obs    observability.Observability
	client *directus.Client
	bus    *eventbus.Bus
}

func newAdminEnv(c *cli.Context) (*adminEnv, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	obs := app.NewObservability(cfg)
	client, err := app.NewDirectusClient(cfg, obs, true)
	if err != nil {
		return nil, err
	}
	bus, err := app.NewEventBus(cfg, obs)
	if err != nil {
		return nil, err
	}
	return &adminEnv{cfg: cfg, obs: obs, client: client, bus: bus}, nil
}

func (e *adminEnv) Close() { _ = e.bus.Close() }

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			a, err := app.New(c.Context, cfg)
			if err != nil {
				return err
			}
			return a.Run(c.Context)
		},
	}
}

func newSchemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "manage the Directus collections",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "print the collections, fields and relations setup would create",
				Action: func(c *cli.Context) error {
					env, err := newAdminEnv(c)
					if err != nil {
						return err
					}
					defer env.Close()
					m, err := schema.NewModule(c.Context, env.obs, env.client, env.bus, nil, nil)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, m.GetService().Plan())
				},
			},
			{
				Name:  "setup",
				Usage: "create missing collections, fields and relations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "report the plan without calling Directus"},
				},
				Action: func(c *cli.Context) error {
					env, err := newAdminEnv(c)
					if err != nil {
						return err
					}
					defer env.Close()
					m, err := schema.NewModule(c.Context, env.obs, env.client, env.bus, nil, nil)
					if err != nil {
						return err
					}
					report, err := m.GetService().Setup(c.Context, schemaservice.SetupOptions{DryRun: c.Bool("dry-run")})
					if err != nil {
						return err
					}
					if err := printJSON(c.App.Writer, report); err != nil {
						return err
					}
					if !report.OK() {
						return cli.Exit(fmt.Sprintf("schema setup finished with %d failed steps", report.Failed), 1)
					}
					return nil
				},
			},
		},
	}
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "copy records between Directus collections",
		Subcommands: []*cli.Command{
			{
				Name:  "legacy",
				Usage: "migrate the legacy collections into the current schema",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "include-events", Usage: "also migrate events, requirements and participants"},
					&cli.BoolFlag{Name: "dry-run", Usage: "read and map records without writing"},
				},
				Action: func(c *cli.Context) error {
					env, err := newAdminEnv(c)
					if err != nil {
						return err
					}
					defer env.Close()

					db, err := openOptionalDB(c.Context, env.cfg)
					if err != nil {
						return err
					}
					if db != nil {
						defer db.Close()
					}

					m, err := migration.NewModule(c.Context, env.obs, env.client, env.bus, db, nil, nil)
					if err != nil {
						return err
					}
					report, err := m.GetService().Run(c.Context, migrationservice.Options{
						IncludeEvents: c.Bool("include-events"),
						DryRun:        c.Bool("dry-run"),
					})
					if report != nil {
						if perr := printJSON(c.App.Writer, report); perr != nil && err == nil {
							err = perr
						}
					}
					if err != nil {
						return err
					}
					if _, failed := report.Totals(); failed > 0 {
						return cli.Exit(fmt.Sprintf("migration finished with %d failed records", failed), 1)
					}
					return nil
				},
			},
		},
	}
}

func openOptionalDB(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	if cfg.Postgres.DSN == "" {
		return nil, nil
	}
	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	if err := bundb.MigrateAll(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newDBCommand() *cli.Command {
	var db *bun.DB
	var migrators map[string]*migrate.Migrator

	return &cli.Command{
		Name:  "db",
		Usage: "local database migrations",
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.Postgres.DSN == "" {
				return errors.New("postgres dsn is not configured")
			}
			db, err = bundb.Open(c.Context, cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			migrators = bundb.Migrators(db)
			return nil
		},
		After: func(c *cli.Context) error {
			if db != nil {
				return db.Close()
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for name, m := range migrators {
						fmt.Fprintf(c.App.Writer, "Initializing migrations for module: %s\n", name)
						if err := m.Init(c.Context); err != nil {
							return fmt.Errorf("module %s: %w", name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for name, m := range migrators {
						group, err := m.Migrate(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", name, err)
						}
						if group.IsZero() {
							fmt.Fprintf(c.App.Writer, "No new migrations to run for module: %s\n", name)
						} else {
							fmt.Fprintf(c.App.Writer, "Migrated module: %s to %s\n", name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					for name, m := range migrators {
						group, err := m.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", name, err)
						}
						if group.IsZero() {
							fmt.Fprintf(c.App.Writer, "No groups to roll back for module: %s\n", name)
						} else {
							fmt.Fprintf(c.App.Writer, "Rolled back module: %s to %s\n", name, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					m, ok := migrators[name]
					if !ok {
						return fmt.Errorf("invalid module name: %s", name)
					}
					mf, err := m.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created migration for module %s: %s (%s)\n", name, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for name, m := range migrators {
						ms, err := m.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "Migrations for module: %s\n", name)
						fmt.Fprintf(c.App.Writer, "  Applied: %s\n", ms.Applied())
						fmt.Fprintf(c.App.Writer, "  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write an XLSX workbook of every collection",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "eventdesk.xlsx", Usage: "output file"},
		},
		Action: func(c *cli.Context) error {
			env, err := newAdminEnv(c)
			if err != nil {
				return err
			}
			defer env.Close()

			m, err := dashboard.NewModule(c.Context, env.obs, env.client, nil, nil)
			if err != nil {
				return err
			}

			f, err := os.Create(c.String("out"))
			if err != nil {
				return err
			}
			if err := m.GetService().Export(c.Context, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Wrote %s\n", c.String("out"))
			return nil
		},
	}
}

func newTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "log in to Directus and print the issued tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true, EnvVars: []string{"DIRECTUS_EMAIL"}},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"DIRECTUS_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			client, err := app.NewDirectusClient(cfg, app.NewObservability(cfg), false)
			if err != nil {
				return err
			}
			tokens, err := client.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			user, err := client.CurrentUser(directus.WithAccessToken(c.Context, tokens.AccessToken))
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, map[string]any{
				"user":   user,
				"admin":  user.IsAdmin(),
				"tokens": tokens,
			})
		},
	}
}
