package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/codelens/internal/app"
	"github.com/tildaslashalef/codelens/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

func main() {
	cliApp := &cli.App{
		Name:  "codelens",
		Usage: "LLM-powered code review for a single snippet",
		Description: "codelens sends a piece of code and its language to a language model with a fixed\n" +
			"review prompt and shows the feedback.\n\n" +
			"When run without subcommands, codelens starts the terminal interface (default action).",
		Version: fmt.Sprintf("%s (%s)", Version, CommitHash),
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Load settings from this .env instead of ~/.codelens/.env",
				EnvVars: []string{"ENV_FILE_PATH"},
			},
		},
		Before: func(c *cli.Context) error {
			application, err := app.New(app.Options{
				EnvFile:     c.String("env-file"),
				Interactive: commands.OwnsTerminal(c.Args().First()),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			app.Attach(c, application)
			return nil
		},
		After: func(c *cli.Context) error {
			if application, err := app.FromContext(c); err == nil {
				return application.Shutdown()
			}
			return nil
		},
		Commands: commands.All(),
		Action: func(c *cli.Context) error {
			return commands.TUICommand().Action(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
