package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/services"
	"github.com/desertthunder/bookx/internal/testing/fakes"
)

func gatedRecommend(gates map[string]chan struct{}) func(context.Context, string, int) (*services.RecommendResult, error) {
	return func(ctx context.Context, name string, n int) (*services.RecommendResult, error) {
		<-gates[name]
		return &services.RecommendResult{
			Success:         true,
			Book:            name,
			Recommendations: []models.Book{{Title: "for " + name, Author: "Someone", Year: 2000}},
		}, nil
	}
}

func TestSelectBook(t *testing.T) {
	t.Run("Only Latest Selection Renders When Older Arrives Last", func(t *testing.T) {
		gates := map[string]chan struct{}{"A": make(chan struct{}), "B": make(chan struct{})}
		h := newHarness(t, &fakes.BookService{RecommendFunc: gatedRecommend(gates)}, ScreenHome)

		h.c.SelectBook("A")
		h.c.SelectBook("B")

		close(gates["B"])
		h.loop.Step(t)
		close(gates["A"])
		h.loop.Step(t)

		v := h.c.View()
		if v.Recommendations == nil || v.Recommendations.Heading != `"B"` {
			t.Fatalf("expected B to be rendered, got %+v", v.Recommendations)
		}
		if v.Recommendations.Cards[0].Title != "for B" {
			t.Errorf("expected B's cards, got %+v", v.Recommendations.Cards)
		}
		if v.Loading {
			t.Error("expected loading to be released")
		}
	})

	t.Run("Stale Response Before Latest Does Not Release Loading", func(t *testing.T) {
		gates := map[string]chan struct{}{"A": make(chan struct{}), "B": make(chan struct{})}
		h := newHarness(t, &fakes.BookService{RecommendFunc: gatedRecommend(gates)}, ScreenHome)

		h.c.SelectBook("A")
		h.c.SelectBook("B")

		close(gates["A"])
		h.loop.Step(t)
		if v := h.c.View(); !v.Loading || v.Recommendations != nil {
			t.Fatalf("stale response leaked into the view: loading=%v recs=%+v", v.Loading, v.Recommendations)
		}

		close(gates["B"])
		h.loop.Step(t)
		if v := h.c.View(); v.Loading || v.Recommendations.Heading != `"B"` {
			t.Errorf("expected B rendered and loading released, got %+v", v)
		}
	})

	t.Run("Dune Scenario", func(t *testing.T) {
		svc := &fakes.BookService{RecommendFunc: func(ctx context.Context, name string, n int) (*services.RecommendResult, error) {
			if name != "Dune" || n != 6 {
				t.Errorf("unexpected request (%q, %d)", name, n)
			}
			return &services.RecommendResult{
				Success: true,
				Book:    "Dune",
				Recommendations: []models.Book{
					{Title: "Hyperion", Author: "Dan Simmons", Year: 1989},
					{Title: "Foundation", Author: "Isaac Asimov", Year: 1951},
					{Title: "Neuromancer", Author: "William Gibson", Year: 1984},
				},
			}, nil
		}}
		h := newHarness(t, svc, ScreenHome)

		h.c.SelectBook("Dune")
		if v := h.c.View(); !v.Loading || v.Search.Input != "Dune" || v.Search.Open {
			t.Fatalf("unexpected in-flight view %+v", v)
		}
		h.loop.Step(t)

		v := h.c.View()
		if v.Recommendations == nil || len(v.Recommendations.Cards) != 3 {
			t.Fatalf("expected 3 cards, got %+v", v.Recommendations)
		}
		want := []BookCard{
			{Title: "Hyperion", Author: "by Dan Simmons", Year: "Published: 1989"},
			{Title: "Foundation", Author: "by Isaac Asimov", Year: "Published: 1951"},
			{Title: "Neuromancer", Author: "by William Gibson", Year: "Published: 1984"},
		}
		for i, card := range v.Recommendations.Cards {
			if card.Title != want[i].Title || card.Author != want[i].Author || card.Year != want[i].Year {
				t.Errorf("card %d = %+v, want %+v", i, card, want[i])
			}
		}
		if v.Focus != SectionRecommendations {
			t.Errorf("expected focus on recommendations, got %v", v.Focus)
		}
		if v.Loading {
			t.Error("expected loading to be released")
		}
	})

	t.Run("Caps Items At Six", func(t *testing.T) {
		svc := &fakes.BookService{RecommendFunc: func(ctx context.Context, name string, n int) (*services.RecommendResult, error) {
			books := make([]models.Book, 9)
			for i := range books {
				books[i] = models.Book{Title: strings.Repeat("x", i+1)}
			}
			return &services.RecommendResult{Success: true, Book: name, Recommendations: books}, nil
		}}
		h := newHarness(t, svc, ScreenHome)
		h.c.SelectBook("Dune")
		h.loop.Step(t)

		if n := len(h.c.View().Recommendations.Cards); n != 6 {
			t.Errorf("expected 6 cards, got %d", n)
		}
	})

	t.Run("Replaces Previous Set", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenHome)
		h.c.SelectBook("Dune")
		h.loop.Step(t)
		h.c.SelectBook("Emma")
		h.loop.Step(t)

		if v := h.c.View(); v.Recommendations.Heading != `"Emma"` {
			t.Errorf("expected Emma, got %s", v.Recommendations.Heading)
		}
	})

	t.Run("Loading Released On Every Outcome", func(t *testing.T) {
		tt := []struct {
			name      string
			recommend func(context.Context, string, int) (*services.RecommendResult, error)
			wantAlert string
		}{
			{
				name: "business failure with message",
				recommend: func(context.Context, string, int) (*services.RecommendResult, error) {
					return &services.RecommendResult{Message: `Book "Nope" not found.`, Suggestions: []string{"Dune"}}, nil
				},
				wantAlert: `Book "Nope" not found.`,
			},
			{
				name: "business failure without message",
				recommend: func(context.Context, string, int) (*services.RecommendResult, error) {
					return &services.RecommendResult{}, nil
				},
				wantAlert: RecommendFailedMessage,
			},
			{
				name: "transport error",
				recommend: func(context.Context, string, int) (*services.RecommendResult, error) {
					return nil, errors.New("connection refused")
				},
				wantAlert: RecommendErrorMessage,
			},
			{
				name: "panic",
				recommend: func(context.Context, string, int) (*services.RecommendResult, error) {
					panic("decoder exploded")
				},
				wantAlert: RecommendErrorMessage,
			},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				h := newHarness(t, &fakes.BookService{RecommendFunc: tc.recommend}, ScreenHome)
				h.c.SelectBook("Nope")
				h.loop.Step(t)

				v := h.c.View()
				if v.Loading {
					t.Error("expected loading to be released")
				}
				if v.Alert == nil || v.Alert.Message != tc.wantAlert {
					t.Errorf("expected alert %q, got %+v", tc.wantAlert, v.Alert)
				}
				if v.Recommendations != nil {
					t.Error("expected no recommendations")
				}
			})
		}
	})

	t.Run("Cancels Pending Search", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenHome)
		h.c.OnInput("dune")
		h.c.SelectBook("Dune")
		h.sched.Advance(SearchDelay * 2)
		h.loop.Step(t)

		if h.svc.Calls("Search") != 0 {
			t.Error("expected pending search to be cancelled")
		}
	})
}

func TestViewExternally(t *testing.T) {
	t.Run("Opens Search Link", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenHome)
		h.c.ViewExternally(models.Book{Title: "Dune", Author: "Frank Herbert"})

		if len(h.opened) != 1 || h.opened[0] != "https://www.google.com/search?q=Dune+Frank+Herbert" {
			t.Errorf("unexpected opened links %v", h.opened)
		}
	})

	t.Run("Failure Notifies", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenHome)
		h.openFn = func(string) error { return errors.New("no browser") }
		h.c.ViewExternally(models.Book{Title: "Dune"})

		n := h.c.View().Notifications
		if len(n) != 1 || n[0].Message != OpenLinkFailedMessage || n[0].Kind != KindError {
			t.Errorf("unexpected notifications %+v", n)
		}
	})
}
