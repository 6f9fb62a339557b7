package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/bookx/internal/formatter"
	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/shared"
	"github.com/urfave/cli/v3"
)

// fetchFavorites logs in and returns the session's favorites, newest first.
func (r *Runner) fetchFavorites(ctx context.Context, cmd *cli.Command) ([]models.Favorite, error) {
	if err := r.authenticate(ctx, cmd); err != nil {
		return nil, err
	}

	res, err := r.api.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotAuthenticated, res.Message)
	}
	return res.Favorites, nil
}

// FavoritesList prints the favorites collection.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	favorites, err := r.fetchFavorites(ctx, cmd)
	if err != nil {
		return err
	}

	data, err := formatter.Favorites(format, favorites)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// FavoritesAdd appends a title to the favorites collection.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.StringArg("title"))
	if title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrMissingArgument)
	}

	if err := r.authenticate(ctx, cmd); err != nil {
		return err
	}

	res, err := r.api.AddFavorite(ctx, title)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, res.Message)
	}

	r.logger.Info("favorite added", "title", title)
	return r.writePlain("✓ %s: %s\n", res.Message, title)
}

// FavoritesExport writes the favorites collection to a file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	favorites, err := r.fetchFavorites(ctx, cmd)
	if err != nil {
		return err
	}

	data, err := formatter.Favorites(format, favorites)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(data, cmd.String("output"), "favorites", format)
	if err != nil {
		return err
	}

	r.logger.Info("favorites exported", "path", path, "count", len(favorites))
	return r.writePlain("✓ Exported %d favorites to %s\n", len(favorites), path)
}
