package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/codelens/internal/app"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/server"
)

// ServeCommand returns the CLI command for the browser surface
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the review page and JSON API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides CODELENS_SERVER_ADDR)",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	cfg := application.Config.Server
	if addr := c.String("addr"); addr != "" {
		cfg.Addr = addr
	}

	srv := server.NewServer(cfg, server.Options{
		Reviewer: application.Reviewer,
		Metrics:  application.Metrics,
		Provider: application.Config.LLMProvider,
		Model:    application.Config.Model(),
	})

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return run(ctx, srv)
}

type startStopper interface {
	Start() error
	Stop() error
}

// run blocks until ctx is done or the server fails, then stops it
func run(ctx context.Context, srv startStopper) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		loggy.Info("received shutdown signal")
	}

	if err := srv.Stop(); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	return <-errCh
}
