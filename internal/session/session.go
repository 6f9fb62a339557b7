package session

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/services"
	"github.com/desertthunder/bookx/internal/shared"
	"golang.org/x/text/language"
)

// Screen is the top-level page being shown.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenHome
)

// Section is a focusable region of the home screen.
type Section int

const (
	SectionSearch Section = iota
	SectionRecommendations
	SectionFavorites
)

func (s Section) String() string {
	switch s {
	case SectionRecommendations:
		return "recommendations"
	case SectionFavorites:
		return "favorites"
	default:
		return "search"
	}
}

// State is everything [Render] needs. Slices are replaced, never mutated in place.
type State struct {
	Screen          Screen
	Auth            AuthState
	Search          SearchState
	QuickPicks      []string
	Loading         bool
	Alert           string
	Suggestions     []string
	Recommendations *models.RecommendationSet
	Favorites       FavoritesState
	Notifications   []Notification
	Focus           Section
}

type SearchState struct {
	Input   string
	Open    bool
	Results []string
}

type FavoritesState struct {
	Loaded bool
	Items  []models.Favorite
}

// Options configures a [Controller]. Service, Loop and Scheduler are required.
type Options struct {
	Service    services.BookService
	Loop       eventloop.Loop
	Scheduler  eventloop.Scheduler
	Logger     *log.Logger
	Locale     language.Tag
	QuickPicks []string
	Screen     Screen

	// Open launches an external link; defaults to [shared.OpenBrowser].
	Open func(url string) error
	// NewID generates notification IDs; defaults to [shared.GenerateID].
	NewID func() string
}

// Controller owns one client session. All methods must be called from the loop in [Options.Loop].
type Controller struct {
	ctx     context.Context
	svc     services.BookService
	loop    eventloop.Loop
	sched   eventloop.Scheduler
	logger  *log.Logger
	open    func(string) error
	dates   DateFormatter
	notices *Emitter

	state State

	pendingSearch eventloop.Handle
	authTimer     eventloop.Handle
	searchSeq     uint64
	recommendSeq  uint64
	favoritesSeq  uint64
	generation    uint64
}

// New creates a controller. ctx bounds every service call the controller issues.
func New(ctx context.Context, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	open := opts.Open
	if open == nil {
		open = shared.OpenBrowser
	}

	return &Controller{
		ctx:     ctx,
		svc:     opts.Service,
		loop:    opts.Loop,
		sched:   opts.Scheduler,
		logger:  logger,
		open:    open,
		dates:   NewDateFormatter(opts.Locale),
		notices: NewEmitter(opts.Scheduler, opts.NewID),
		state: State{
			Screen:     opts.Screen,
			QuickPicks: opts.QuickPicks,
		},
	}
}

// Start performs the work of entering the initial screen.
func (c *Controller) Start() {
	if c.state.Screen == ScreenHome {
		c.LoadFavorites()
	}
}

// State returns a copy of the current state with the visible notifications filled in.
func (c *Controller) State() State {
	s := c.state
	s.Notifications = c.notices.Active()
	return s
}

// View renders the current state.
func (c *Controller) View() View {
	return Render(c.State(), c.dates)
}

// Notify shows a transient message.
func (c *Controller) Notify(message string, kind Kind) {
	c.notices.Notify(message, kind)
}

// Focus moves focus to a home screen section.
func (c *Controller) Focus(s Section) {
	c.state.Focus = s
}

// DismissAlert closes the blocking alert.
func (c *Controller) DismissAlert() {
	c.state.Alert = ""
	c.state.Suggestions = nil
}

// live returns a check that reports whether the session that issued a request is still current.
func (c *Controller) live() func() bool {
	gen := c.generation
	return func() bool { return gen == c.generation }
}

// reset discards session-scoped state and invalidates every in-flight request.
func (c *Controller) reset() {
	c.generation++
	c.searchSeq++
	c.recommendSeq++
	c.cancelPendingSearch()
	c.cancelAuthTimer()

	c.state = State{
		Screen:     ScreenAuth,
		QuickPicks: c.state.QuickPicks,
	}
}

func (c *Controller) cancelAuthTimer() {
	if c.authTimer != nil {
		c.authTimer.Cancel()
		c.authTimer = nil
	}
}
