package session

import (
	"fmt"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/shared"
)

const (
	NoResultsLabel       = "No books found"
	EmptyFavoritesLabel  = "No favorites yet. Start exploring!"
	LoadingFavoritesText = "Loading favorites..."
)

// View is the render instruction set for one frame.
type View struct {
	Screen          Screen
	Auth            AuthView
	Search          SearchView
	QuickPicks      []string
	Loading         bool
	Alert           *AlertView
	Recommendations *RecommendationsView
	Favorites       FavoritesView
	Notifications   []Notification
	Focus           Section
}

type AuthView struct {
	Mode        AuthMode
	Title       string
	Message     string
	MessageKind Kind
	Username    string
	Pending     bool
}

type SearchView struct {
	Input   string
	Open    bool
	Entries []SearchEntry
}

// SearchEntry is one line of the results panel. Placeholder lines are not selectable.
type SearchEntry struct {
	Label      string
	Selectable bool
}

type AlertView struct {
	Message     string
	Suggestions []string
}

type RecommendationsView struct {
	Heading string
	Cards   []BookCard
}

// BookCard is a recommendation with its display strings and external search link.
type BookCard struct {
	Book   models.Book
	Title  string
	Author string
	Year   string
	Link   string
}

type FavoritesView struct {
	Placeholder string
	Cards       []FavoriteCard
}

type FavoriteCard struct {
	Title string
	Added string
}

// Render projects state into a [View]. It has no side effects.
func Render(s State, dates DateFormatter) View {
	v := View{
		Screen:        s.Screen,
		Auth:          renderAuth(s.Auth),
		Search:        renderSearch(s.Search),
		QuickPicks:    s.QuickPicks,
		Loading:       s.Loading,
		Favorites:     renderFavorites(s.Favorites, dates),
		Notifications: s.Notifications,
		Focus:         s.Focus,
	}

	if s.Alert != "" {
		v.Alert = &AlertView{Message: s.Alert, Suggestions: s.Suggestions}
	}
	if s.Recommendations != nil {
		v.Recommendations = renderRecommendations(*s.Recommendations)
	}
	return v
}

func renderAuth(a AuthState) AuthView {
	title := "Login"
	if a.Mode == ModeSignup {
		title = "Sign Up"
	}
	return AuthView{
		Mode:        a.Mode,
		Title:       title,
		Message:     a.Message,
		MessageKind: a.Kind,
		Username:    a.Username,
		Pending:     a.Pending,
	}
}

func renderSearch(s SearchState) SearchView {
	v := SearchView{Input: s.Input, Open: s.Open}
	if !s.Open {
		return v
	}

	if len(s.Results) == 0 {
		v.Entries = []SearchEntry{{Label: NoResultsLabel}}
		return v
	}

	v.Entries = make([]SearchEntry, len(s.Results))
	for i, title := range s.Results {
		v.Entries[i] = SearchEntry{Label: title, Selectable: true}
	}
	return v
}

func renderRecommendations(set models.RecommendationSet) *RecommendationsView {
	v := &RecommendationsView{
		Heading: fmt.Sprintf("\"%s\"", set.SourceBook),
		Cards:   make([]BookCard, len(set.Items)),
	}
	for i, b := range set.Items {
		v.Cards[i] = BookCard{
			Book:   b,
			Title:  b.Title,
			Author: "by " + b.Author,
			Year:   "Published: " + b.Published(),
			Link:   shared.SearchLink(b.Title, b.Author),
		}
	}
	return v
}

func renderFavorites(f FavoritesState, dates DateFormatter) FavoritesView {
	if !f.Loaded {
		return FavoritesView{Placeholder: LoadingFavoritesText}
	}
	if len(f.Items) == 0 {
		return FavoritesView{Placeholder: EmptyFavoritesLabel}
	}

	v := FavoritesView{Cards: make([]FavoriteCard, len(f.Items))}
	for i, fav := range f.Items {
		v.Cards[i] = FavoriteCard{Title: fav.Title, Added: "Added " + dates.Format(fav.AddedAt)}
	}
	return v
}
