package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/bookx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Login verifies credentials and prints the service message.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	if err := r.authenticate(ctx, cmd); err != nil {
		return err
	}
	return r.writePlain("✓ Logged in as %s\n", cmd.String("username"))
}

// Register creates an account with the given username, email and password.
func (r *Runner) Register(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email := cmd.String("email")
	password := cmd.String("password")

	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: --username, --email and --password are required", shared.ErrMissingArgument)
	}

	res, err := r.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, res.Message)
	}

	r.logger.Info("registered", "username", username)
	return r.writePlain("✓ %s\n", res.Message)
}

// Logout opens a session with the given credentials and ends it.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := r.authenticate(ctx, cmd); err != nil {
		return err
	}

	status, err := r.api.Logout(ctx)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: logout returned status %d", shared.ErrAPIRequest, status)
	}
	return r.writePlain("✓ Logged out\n")
}
