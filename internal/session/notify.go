package session

import (
	"slices"
	"time"

	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/shared"
)

const (
	// NotificationDisplay is how long a notification stays fully visible.
	NotificationDisplay = 3000 * time.Millisecond
	// NotificationExit is the length of the exit phase before removal.
	NotificationExit = 300 * time.Millisecond
)

// Kind classifies user feedback.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	default:
		return "success"
	}
}

// Notification is one transient message.
type Notification struct {
	ID      string
	Message string
	Kind    Kind
	Leaving bool
}

// Emitter keeps the stack of visible notifications. Each entry owns its own timers.
//
// Emitter is not safe for concurrent use; call it from the loop that drives its [eventloop.Scheduler].
type Emitter struct {
	sched   eventloop.Scheduler
	newID   func() string
	entries []*Notification
}

// NewEmitter creates an emitter. A nil newID uses [shared.GenerateID].
func NewEmitter(sched eventloop.Scheduler, newID func() string) *Emitter {
	if newID == nil {
		newID = shared.GenerateID
	}
	return &Emitter{sched: sched, newID: newID}
}

// Notify appends a notification and schedules its exit and removal. It returns the new ID.
func (e *Emitter) Notify(message string, kind Kind) string {
	n := &Notification{ID: e.newID(), Message: message, Kind: kind}
	e.entries = append(e.entries, n)

	e.sched.AfterFunc(NotificationDisplay, func() {
		n.Leaving = true
		e.sched.AfterFunc(NotificationExit, func() { e.remove(n.ID) })
	})
	return n.ID
}

func (e *Emitter) remove(id string) {
	e.entries = slices.DeleteFunc(e.entries, func(n *Notification) bool { return n.ID == id })
}

// Active returns a snapshot of visible notifications in arrival order.
func (e *Emitter) Active() []Notification {
	out := make([]Notification, len(e.entries))
	for i, n := range e.entries {
		out[i] = *n
	}
	return out
}
