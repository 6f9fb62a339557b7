package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/bookx/internal/formatter"
	"github.com/desertthunder/bookx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search prints titles matching the query, one per line.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))

	r.logger.Debug("searching", "query", query)

	books, err := r.api.Search(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string][]string{"books": books}, false)
	}

	if len(books) == 0 {
		return r.writePlain("No books found\n")
	}
	for _, title := range books {
		if err := r.writePlain("%s\n", title); err != nil {
			return err
		}
	}
	return nil
}

// Recommend prints or exports recommendations for a book.
//
// An unknown title prints the service's suggestions and fails with [shared.ErrBookNotFound].
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	book := strings.TrimSpace(cmd.StringArg("book"))
	if book == "" {
		return fmt.Errorf("%w: book name is required", shared.ErrMissingArgument)
	}

	n := cmd.Int("n")
	if n <= 0 {
		return fmt.Errorf("%w: -n must be positive", shared.ErrInvalidFlag)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	res, err := r.api.Recommend(ctx, book, int(n))
	if err != nil {
		return err
	}

	if !res.Success {
		r.writePlain("%s\n", res.Message)
		if len(res.Suggestions) > 0 {
			r.writePlainln("Try one of:")
			for _, s := range res.Suggestions {
				r.writePlain("  - %s\n", s)
			}
		}
		return fmt.Errorf("%w: %s", shared.ErrBookNotFound, book)
	}

	data, err := formatter.Recommendations(format, res.Set())
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(data, output, "recommendations", format)
		if err != nil {
			return err
		}
		r.logger.Info("recommendations exported", "path", path, "count", len(res.Recommendations))
		return r.writePlain("✓ Exported %d recommendations to %s\n", len(res.Recommendations), path)
	}
	return r.writeBytes(data)
}
