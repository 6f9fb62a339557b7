package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/bookx/internal/server"
	"github.com/desertthunder/bookx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the development book service until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if path := cmd.String("db"); path != "" {
		config.Database.Path = path
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = config.Server.Addr()
	}

	db, err := r.openDatabase(config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := shared.WithLogger(r.logger, "component", "server")
	handler, err := server.New(server.Options{
		DB:     db,
		Logger: logger,
		Config: config.Server,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, addr, handler, logger)
}
