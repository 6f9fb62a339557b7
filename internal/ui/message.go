package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bookx/internal/eventloop"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	// MsgDispatch carries a controller callback to run inside Update.
	MsgDispatch MsgKind = iota
)

// dispatchMsg is the constructor for [MsgDispatch]
func dispatchMsg(fn func()) Msg {
	return Msg{kind: MsgDispatch, data: fn}
}

// Pump forwards callbacks posted to q into send as dispatch messages until ctx is done.
//
// Pass [tea.Program.Send]; callbacks then run on bubbletea's update goroutine, which owns the controller.
func Pump(ctx context.Context, q *eventloop.Queue, send func(tea.Msg)) {
	for {
		fn, err := q.Pop(ctx)
		if err != nil {
			return
		}
		send(dispatchMsg(fn))
	}
}
