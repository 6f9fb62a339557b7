// package server contains middleware & handlers for the book recommendation development backend
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bookx/internal/catalog"
	"github.com/desertthunder/bookx/internal/repositories"
	"github.com/desertthunder/bookx/internal/shared"
)

const shutdownTimeout = 5 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, panic recovery, CORS, and session lookup.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the book service.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Options configures [New].
type Options struct {
	DB      *sql.DB
	Catalog *catalog.Catalog // defaults to [catalog.NewDemo]
	Logger  *log.Logger
	Config  shared.ServerConfig
}

// New builds the API handler over the database in opts. Migrations must already be applied.
//
// CORS wraps the whole router so preflight requests are answered before method routing.
func New(opts Options) (http.Handler, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("%w: database is required", shared.ErrInvalidConfig)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewDemo()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	sessions := repositories.NewSessionRepository(opts.DB)
	cookies := newCookieSigner(opts.Config.SessionSecret)

	api := &API{
		users:     repositories.NewUserRepository(opts.DB),
		favorites: repositories.NewFavoriteRepository(opts.DB),
		sessions:  sessions,
		catalog:   opts.Catalog,
		cookies:   cookies,
		logger:    opts.Logger,
	}

	router := NewBasicRouter()
	router.Use(
		Recover(opts.Logger),
		Logging(opts.Logger),
		Session(sessions, cookies),
	)
	api.Register(router)
	return CORS(opts.Config.AllowedOrigins)(router), nil
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}
