package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/syssam/metagen"
	"github.com/syssam/metagen/config"
	"github.com/syssam/metagen/internal/commands"
	_ "github.com/syssam/metagen/schema/cim"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	commit = "HEAD"
	date   = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}
	return fmt.Sprintf("%s (%s) %s", metagen.Version, short, date)
}

func main() {
	flags := &commands.Flags{}
	ctrl := &commands.Controller{Flags: flags}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "configuration file (default " + config.FileName + " when present)",
		Destination: &flags.Config,
	}
	schemaFlags := []cli.Flag{
		configFlag,
		&cli.StringFlag{
			Name:        "schema",
			Aliases:     []string{"s"},
			Usage:       "registered schema name",
			Destination: &flags.Schema,
		},
		&cli.StringFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "schema version, or latest",
			Destination: &flags.Version,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "schema file (.yaml, .json or .msgpack) used instead of a registered schema",
			Destination: &flags.File,
		},
	}

	app := &cli.Command{
		Name:        "metagen",
		Usage:       "Generate typed models, decoders and validators from an ontology schema",
		Version:     build(),
		HideVersion: true, // -v selects the schema version
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("METAGEN_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}
			if !c.IsSet("log-level") {
				if cfg, err := config.LoadOrDefault(config.FileName); err == nil {
					level = cfg.Level()
				}
			}
			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate code for a schema",
				Flags: slices.Concat(schemaFlags, []cli.Flag{
					&cli.StringFlag{
						Name:        "language",
						Aliases:     []string{"l"},
						Usage:       "target language",
						Destination: &flags.Language,
					},
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "output directory",
						Destination: &flags.Output,
					},
					&cli.BoolFlag{
						Name:        "strict",
						Usage:       "fail on dangling type references",
						Destination: &flags.Strict,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "number of emitters run concurrently",
					},
					&cli.BoolFlag{
						Name:        "watch",
						Aliases:     []string{"w"},
						Usage:       "regenerate when the schema file changes",
						Destination: &flags.Watch,
					},
				}),
				Action: func(ctx context.Context, c *cli.Command) error {
					flags.Workers = int(c.Int("workers"))
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, c *cli.Command) error {
					_, err := fmt.Println(build())
					return err
				},
			},
			{
				Name:  "schemas",
				Usage: "List the registered schemas",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Schemas(ctx)
				},
			},
			{
				Name:  "languages",
				Usage: "List the supported target languages",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Languages(ctx)
				},
			},
			{
				Name:  "inspect",
				Usage: "Print a schema as yaml, json or msgpack",
				Flags: slices.Concat(schemaFlags, []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (yaml, json, msgpack)",
						Value:       "yaml",
						Destination: &flags.Format,
					},
					&cli.BoolFlag{
						Name:        "stats",
						Usage:       "print a summary of the assembled ontology instead",
						Destination: &flags.Stats,
					},
				}),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Inspect(ctx)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run metagen")
	}
}
