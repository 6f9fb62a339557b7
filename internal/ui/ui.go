package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/bookx/internal/session"
)

const (
	cardWidth   = 30
	cardsPerRow = 3
)

// Model is the bubbletea model over a [session.Controller].
//
// The controller is only touched from Update and View, which bubbletea runs on one goroutine.
type Model struct {
	ctrl   *session.Controller
	width  int
	height int

	username  textinput.Model
	email     textinput.Model
	password  textinput.Model
	authFocus int

	search       textinput.Model
	searchCursor int
	recCursor    int
	favCursor    int
	alertCursor  int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	screen  session.Screen
	prefill string
}

// NewModel creates a TUI model for ctrl. The controller's loop must be pumped into the program with [Pump].
func NewModel(ctrl *session.Controller) *Model {
	m := &Model{
		ctrl:         ctrl,
		username:     newInput("username", false),
		email:        newInput("email", false),
		password:     newInput("password", true),
		search:       newInput("Search for a book...", false),
		searchCursor: -1,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         newKeyMap(),
	}

	m.screen = ctrl.View().Screen
	if m.screen == session.ScreenHome {
		m.search.Focus()
	} else {
		m.username.Focus()
	}
	return m
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// Init starts the controller and the spinner.
func (m *Model) Init() tea.Cmd {
	start := func() tea.Msg { return dispatchMsg(m.ctrl.Start) }
	return tea.Batch(textinput.Blink, m.spinner.Tick, start)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Msg:
		if msg.kind == MsgDispatch {
			if fn, ok := msg.data.(func()); ok {
				fn()
			}
		}
		return m, m.sync()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}

		v := m.ctrl.View()
		var cmd tea.Cmd
		switch {
		case v.Loading:
			return m, nil
		case v.Alert != nil:
			m.handleAlertKeys(msg, v)
		case v.Screen == session.ScreenAuth:
			cmd = m.handleAuthKeys(msg, v)
		default:
			cmd = m.handleHomeKeys(msg, v)
		}
		return m, tea.Batch(cmd, m.sync())
	}

	return m, m.updateInputs(msg)
}

// sync pulls controller state that the inputs mirror back into the widgets.
func (m *Model) sync() tea.Cmd {
	v := m.ctrl.View()
	var cmds []tea.Cmd

	if v.Screen != m.screen {
		m.screen = v.Screen
		if v.Screen == session.ScreenHome {
			m.blurAuth()
			cmds = append(cmds, m.search.Focus())
		} else {
			m.clearInputs()
			m.authFocus = 0
			cmds = append(cmds, m.focusAuth(v.Auth.Mode))
		}
	}

	if v.Screen == session.ScreenAuth && v.Auth.Username != "" && v.Auth.Username != m.prefill {
		m.prefill = v.Auth.Username
		m.username.SetValue(v.Auth.Username)
		m.password.SetValue("")
		m.authFocus = len(m.fields(v.Auth.Mode)) - 1
		cmds = append(cmds, m.focusAuth(v.Auth.Mode))
	}

	if v.Search.Input != m.search.Value() {
		m.search.SetValue(v.Search.Input)
		m.search.CursorEnd()
	}

	if v.Screen == session.ScreenHome {
		if v.Focus == session.SectionSearch && !m.search.Focused() {
			cmds = append(cmds, m.search.Focus())
		} else if v.Focus != session.SectionSearch {
			m.search.Blur()
		}
	}

	m.searchCursor = clampCursor(m.searchCursor, len(v.Search.Entries), true)
	if v.Recommendations != nil {
		m.recCursor = clampCursor(m.recCursor, len(v.Recommendations.Cards), false)
	}
	m.favCursor = clampCursor(m.favCursor, len(v.Favorites.Cards), false)
	if v.Alert != nil {
		m.alertCursor = clampCursor(m.alertCursor, len(v.Alert.Suggestions), false)
	} else {
		m.alertCursor = 0
	}

	return tea.Batch(cmds...)
}

// clampCursor keeps c inside [0, n). With allowNone, -1 means nothing is highlighted.
func clampCursor(c, n int, allowNone bool) int {
	lo := 0
	if allowNone {
		lo = -1
	}
	if c >= n {
		c = n - 1
	}
	if c < lo {
		c = lo
	}
	return c
}

func (m *Model) fields(mode session.AuthMode) []*textinput.Model {
	if mode == session.ModeSignup {
		return []*textinput.Model{&m.username, &m.email, &m.password}
	}
	return []*textinput.Model{&m.username, &m.password}
}

func (m *Model) blurAuth() {
	m.username.Blur()
	m.email.Blur()
	m.password.Blur()
}

func (m *Model) focusAuth(mode session.AuthMode) tea.Cmd {
	m.blurAuth()
	fields := m.fields(mode)
	m.authFocus = clampCursor(m.authFocus, len(fields), false)
	return fields[m.authFocus].Focus()
}

func (m *Model) clearInputs() {
	m.username.SetValue("")
	m.email.SetValue("")
	m.password.SetValue("")
	m.search.SetValue("")
	m.search.Blur()
	m.prefill = ""
	m.searchCursor, m.recCursor, m.favCursor = -1, 0, 0
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, 4)
	for _, ti := range []*textinput.Model{&m.username, &m.email, &m.password, &m.search} {
		if !ti.Focused() {
			continue
		}
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg, v session.View) tea.Cmd {
	fields := m.fields(v.Auth.Mode)

	switch {
	case key.Matches(msg, m.keys.toggle):
		if v.Auth.Mode == session.ModeLogin {
			m.ctrl.ShowSignup()
			m.authFocus = 0
			return m.focusAuth(session.ModeSignup)
		}
		m.ctrl.ShowLogin()
		m.authFocus = 0
		return m.focusAuth(session.ModeLogin)

	case key.Matches(msg, m.keys.next), key.Matches(msg, m.keys.down):
		m.authFocus = (m.authFocus + 1) % len(fields)
		return m.focusAuth(v.Auth.Mode)

	case key.Matches(msg, m.keys.prev), key.Matches(msg, m.keys.up):
		m.authFocus = (m.authFocus + len(fields) - 1) % len(fields)
		return m.focusAuth(v.Auth.Mode)

	case key.Matches(msg, m.keys.enter):
		if v.Auth.Pending {
			return nil
		}
		if v.Auth.Mode == session.ModeSignup {
			m.ctrl.Register(strings.TrimSpace(m.username.Value()), strings.TrimSpace(m.email.Value()), m.password.Value())
		} else {
			m.ctrl.Login(strings.TrimSpace(m.username.Value()), m.password.Value())
		}
		return nil
	}

	return m.updateInputs(msg)
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg, v session.View) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.logout):
		m.ctrl.Logout()
		return nil
	case key.Matches(msg, m.keys.next):
		m.ctrl.Focus((v.Focus + 1) % 3)
		return nil
	case key.Matches(msg, m.keys.prev):
		m.ctrl.Focus((v.Focus + 2) % 3)
		return nil
	case key.Matches(msg, m.keys.quickPick):
		idx := int(msg.Runes[len(msg.Runes)-1] - '1')
		if idx >= 0 && idx < len(v.QuickPicks) {
			m.ctrl.SelectBook(v.QuickPicks[idx])
		}
		return nil
	}

	switch v.Focus {
	case session.SectionRecommendations:
		m.handleRecommendationKeys(msg, v)
		return nil
	case session.SectionFavorites:
		m.handleFavoriteKeys(msg, v)
		return nil
	default:
		return m.handleSearchKeys(msg, v)
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg, v session.View) tea.Cmd {
	entries := v.Search.Entries

	switch {
	case key.Matches(msg, m.keys.down):
		if v.Search.Open && m.searchCursor < len(entries)-1 {
			m.searchCursor++
		}
		return nil
	case key.Matches(msg, m.keys.up):
		if m.searchCursor >= 0 {
			m.searchCursor--
		}
		return nil
	case key.Matches(msg, m.keys.back):
		m.ctrl.ClosePanel()
		m.searchCursor = -1
		return nil
	case key.Matches(msg, m.keys.enter):
		if v.Search.Open && m.searchCursor >= 0 && m.searchCursor < len(entries) {
			entry := entries[m.searchCursor]
			if entry.Selectable {
				m.searchCursor = -1
				m.ctrl.SelectBook(entry.Label)
			}
			return nil
		}
		m.ctrl.SubmitSearch()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.searchCursor = -1
		m.ctrl.OnInput(after)
	}
	return cmd
}

func (m *Model) handleRecommendationKeys(msg tea.KeyMsg, v session.View) {
	if v.Recommendations == nil || len(v.Recommendations.Cards) == 0 {
		return
	}
	cards := v.Recommendations.Cards

	switch {
	case key.Matches(msg, m.keys.down):
		m.recCursor = clampCursor(m.recCursor+1, len(cards), false)
	case key.Matches(msg, m.keys.up):
		m.recCursor = clampCursor(m.recCursor-1, len(cards), false)
	case key.Matches(msg, m.keys.favorite):
		m.ctrl.AddFavorite(cards[m.recCursor].Title)
	case key.Matches(msg, m.keys.open), key.Matches(msg, m.keys.enter):
		m.ctrl.ViewExternally(cards[m.recCursor].Book)
	}
}

func (m *Model) handleFavoriteKeys(msg tea.KeyMsg, v session.View) {
	cards := v.Favorites.Cards
	if len(cards) == 0 {
		return
	}

	switch {
	case key.Matches(msg, m.keys.down):
		m.favCursor = clampCursor(m.favCursor+1, len(cards), false)
	case key.Matches(msg, m.keys.up):
		m.favCursor = clampCursor(m.favCursor-1, len(cards), false)
	case key.Matches(msg, m.keys.enter):
		m.ctrl.SelectFavorite(cards[m.favCursor].Title)
	}
}

func (m *Model) handleAlertKeys(msg tea.KeyMsg, v session.View) {
	suggestions := v.Alert.Suggestions

	switch {
	case key.Matches(msg, m.keys.back):
		m.ctrl.DismissAlert()
	case key.Matches(msg, m.keys.down):
		m.alertCursor = clampCursor(m.alertCursor+1, len(suggestions), false)
	case key.Matches(msg, m.keys.up):
		m.alertCursor = clampCursor(m.alertCursor-1, len(suggestions), false)
	case key.Matches(msg, m.keys.enter):
		m.ctrl.DismissAlert()
		if len(suggestions) > 0 {
			m.ctrl.SelectBook(suggestions[m.alertCursor])
		}
	}
}

// View renders the UI based on the current controller view.
func (m *Model) View() string {
	v := m.ctrl.View()

	var body string
	if v.Screen == session.ScreenAuth {
		body = m.renderAuth(v)
	} else {
		body = m.renderHome(v)
	}

	switch {
	case v.Alert != nil:
		body = m.center(m.renderAlert(*v.Alert))
	case v.Loading:
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.spinner.View()+" Loading recommendations...")
	}

	if notes := renderNotifications(v.Notifications); notes != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, notes, "", body)
	}
	return body
}

func (m *Model) center(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m *Model) renderAuth(v session.View) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("bookx · " + v.Auth.Title))
	b.WriteString("\n")

	labels := []string{"Username", "Password"}
	if v.Auth.Mode == session.ModeSignup {
		labels = []string{"Username", "Email", "Password"}
	}
	for i, ti := range m.fields(v.Auth.Mode) {
		fmt.Fprintf(&b, "%s\n%s\n\n", styles.muted.Render(labels[i]), ti.View())
	}

	switch {
	case v.Auth.Pending:
		b.WriteString(m.spinner.View() + " Submitting...\n")
	case v.Auth.Message != "" && v.Auth.MessageKind == session.KindError:
		b.WriteString(styles.err.Render(v.Auth.Message) + "\n")
	case v.Auth.Message != "":
		b.WriteString(styles.ok.Render(v.Auth.Message) + "\n")
	}

	toggle := "ctrl+t: create an account"
	if v.Auth.Mode == session.ModeSignup {
		toggle = "ctrl+t: back to login"
	}
	b.WriteString("\n" + styles.help.Render(toggle) + "\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.enter, m.keys.quit}))
	return b.String()
}

func (m *Model) renderHome(v session.View) string {
	sections := []string{
		styles.title.Render("bookx"),
		m.renderSearch(v),
		m.renderQuickPicks(v.QuickPicks),
	}

	if v.Recommendations != nil {
		sections = append(sections, m.renderRecommendations(v))
	}
	sections = append(sections, m.renderFavorites(v), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func sectionHeading(title string, focused bool) string {
	if focused {
		return styles.heading.Render("▸ " + title)
	}
	return styles.muted.Render("  " + title)
}

func (m *Model) renderSearch(v session.View) string {
	lines := []string{sectionHeading("Search", v.Focus == session.SectionSearch), m.search.View()}

	for i, entry := range v.Search.Entries {
		switch {
		case !entry.Selectable:
			lines = append(lines, styles.muted.Render("  "+entry.Label))
		case i == m.searchCursor:
			lines = append(lines, styles.selected.Render("> "+entry.Label))
		default:
			lines = append(lines, "  "+entry.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) renderQuickPicks(picks []string) string {
	if len(picks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(picks))
	for i, p := range picks {
		if i >= 9 {
			break
		}
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, p))
	}
	return styles.muted.Render("Quick picks (alt+n): ") + strings.Join(parts, "  ") + "\n"
}

func (m *Model) renderRecommendations(v session.View) string {
	rv := v.Recommendations
	focused := v.Focus == session.SectionRecommendations

	cards := make([]string, len(rv.Cards))
	for i, c := range rv.Cards {
		style := styles.card
		if focused && i == m.recCursor {
			style = styles.focused
		}
		content := fmt.Sprintf("%s\n%s\n%s", styles.heading.Render(c.Title), c.Author, styles.muted.Render(c.Year))
		cards[i] = style.Width(cardWidth).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeading("Recommendations for "+rv.Heading, focused),
		grid(cards),
		"",
	)
}

func (m *Model) renderFavorites(v session.View) string {
	focused := v.Focus == session.SectionFavorites
	heading := sectionHeading("Favorites", focused)

	if v.Favorites.Placeholder != "" {
		return lipgloss.JoinVertical(lipgloss.Left, heading, styles.muted.Render("  "+v.Favorites.Placeholder), "")
	}

	cards := make([]string, len(v.Favorites.Cards))
	for i, c := range v.Favorites.Cards {
		style := styles.card
		if focused && i == m.favCursor {
			style = styles.focused
		}
		cards[i] = style.Width(cardWidth).Render(fmt.Sprintf("%s\n%s", c.Title, styles.muted.Render(c.Added)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, grid(cards), "")
}

func (m *Model) renderAlert(a session.AlertView) string {
	lines := []string{styles.err.Render(a.Message)}

	if len(a.Suggestions) > 0 {
		lines = append(lines, "", styles.muted.Render("Try one of these:"))
		for i, s := range a.Suggestions {
			if i == m.alertCursor {
				lines = append(lines, styles.selected.Render("> "+s))
			} else {
				lines = append(lines, "  "+s)
			}
		}
	}

	lines = append(lines, "", styles.help.Render("enter: select · esc: close"))
	return styles.modal.Render(strings.Join(lines, "\n"))
}

func renderNotifications(notes []session.Notification) string {
	if len(notes) == 0 {
		return ""
	}

	lines := make([]string, len(notes))
	for i, n := range notes {
		style := styles.ok
		if n.Kind == session.KindError {
			style = styles.err
		}
		if n.Leaving {
			style = styles.muted
		}
		lines[i] = style.Render(n.Message)
	}
	return strings.Join(lines, "\n")
}

// grid lays cards out left to right, [cardsPerRow] per row.
func grid(cards []string) string {
	rows := make([]string, 0, (len(cards)+cardsPerRow-1)/cardsPerRow)
	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
