package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/session"
	"github.com/desertthunder/bookx/internal/shared"
	"github.com/desertthunder/bookx/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultLogPath = "./tmp/bookx-tui.log"

// TUI launches the interactive book explorer.
//
// With --username and --password the session starts on the home screen.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.UI.LogPath
	if logPath == "" {
		logPath = defaultLogPath
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	screen := session.ScreenAuth
	if cmd.String("username") != "" || cmd.String("password") != "" {
		if err := r.authenticate(ctx, cmd); err != nil {
			return err
		}
		screen = session.ScreenHome
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := eventloop.NewQueue()
	ctrl := session.New(ctx, session.Options{
		Service:    r.api,
		Loop:       queue,
		Scheduler:  eventloop.NewTimerScheduler(queue),
		Logger:     shared.WithLogger(fileLogger, "component", "session"),
		Locale:     session.ResolveLocale(r.config.UI.Locale),
		QuickPicks: r.config.UI.QuickPicks,
		Screen:     screen,
	})

	p := tea.NewProgram(ui.NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	go ui.Pump(ctx, queue, p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
