package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/services"
	"github.com/desertthunder/bookx/internal/testing/fakes"
)

func TestAddFavorite(t *testing.T) {
	t.Run("Success Triggers Exactly One Load", func(t *testing.T) {
		store := []models.Favorite{
			{Title: "Dune", AddedAt: models.ParseTimestamp("2024-01-02 10:00:00")},
			{Title: "Emma", AddedAt: models.ParseTimestamp("2023-12-25 08:30:00")},
		}
		svc := &fakes.BookService{FavoritesFunc: func(ctx context.Context) (*services.FavoritesResult, error) {
			return &services.FavoritesResult{Success: true, Favorites: store}, nil
		}}
		h := newHarness(t, svc, ScreenHome)

		h.c.AddFavorite("Dune")
		h.loop.Step(t)
		h.loop.Step(t)

		if n := h.svc.Calls("Favorites"); n != 1 {
			t.Fatalf("expected exactly one load, got %d", n)
		}
		if h.loop.Pending() != 0 {
			t.Errorf("unexpected extra work queued: %d", h.loop.Pending())
		}

		v := h.c.View()
		if len(v.Favorites.Cards) != len(store) {
			t.Fatalf("expected %d cards, got %+v", len(store), v.Favorites)
		}
		want := []FavoriteCard{{Title: "Dune", Added: "Added 1/2/2024"}, {Title: "Emma", Added: "Added 12/25/2023"}}
		for i, card := range v.Favorites.Cards {
			if card != want[i] {
				t.Errorf("card %d = %+v, want %+v", i, card, want[i])
			}
		}

		n := v.Notifications
		if len(n) != 1 || n[0].Message != AddedFavoriteMessage || n[0].Kind != KindSuccess {
			t.Errorf("unexpected notifications %+v", n)
		}
	})

	t.Run("Already In Favorites", func(t *testing.T) {
		svc := &fakes.BookService{AddFavoriteFunc: func(ctx context.Context, title string) (*services.StatusResult, error) {
			return &services.StatusResult{Success: false, Message: "Already in favorites"}, nil
		}}
		h := newHarness(t, svc, ScreenHome)

		h.c.AddFavorite("Dune")
		h.loop.Step(t)

		n := h.c.View().Notifications
		if len(n) != 1 || n[0].Message != "Already in favorites" || n[0].Kind != KindError {
			t.Fatalf("unexpected notifications %+v", n)
		}
		if h.svc.Calls("Favorites") != 0 || h.loop.Pending() != 0 {
			t.Error("favorites grid must not reload after a failed add")
		}

		h.sched.Advance(NotificationDisplay)
		if n := h.c.View().Notifications; len(n) != 1 || !n[0].Leaving {
			t.Fatalf("expected notification in exit phase, got %+v", n)
		}
		h.sched.Advance(NotificationExit - time.Millisecond)
		if len(h.c.View().Notifications) != 1 {
			t.Fatal("notification removed before the exit phase ended")
		}
		h.sched.Advance(time.Millisecond)
		if n := h.c.View().Notifications; len(n) != 0 {
			t.Errorf("expected notification to be dismissed at 3.3s, got %+v", n)
		}
	})

	t.Run("Business Failure Without Message", func(t *testing.T) {
		svc := &fakes.BookService{AddFavoriteFunc: func(ctx context.Context, title string) (*services.StatusResult, error) {
			return &services.StatusResult{}, nil
		}}
		h := newHarness(t, svc, ScreenHome)
		h.c.AddFavorite("Dune")
		h.loop.Step(t)

		if n := h.c.View().Notifications; len(n) != 1 || n[0].Message != AddFavoriteFailedMessage {
			t.Errorf("unexpected notifications %+v", n)
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		svc := &fakes.BookService{AddFavoriteFunc: func(ctx context.Context, title string) (*services.StatusResult, error) {
			return nil, errors.New("connection reset")
		}}
		h := newHarness(t, svc, ScreenHome)
		h.c.AddFavorite("Dune")
		h.loop.Step(t)

		n := h.c.View().Notifications
		if len(n) != 1 || n[0].Message != AddFavoriteFailedMessage || n[0].Kind != KindError {
			t.Errorf("unexpected notifications %+v", n)
		}
		if h.svc.Calls("Favorites") != 0 {
			t.Error("expected no reload")
		}
	})
}

func TestLoadFavorites(t *testing.T) {
	t.Run("Empty Collection Shows Placeholder", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenHome)
		h.c.LoadFavorites()
		h.loop.Step(t)

		v := h.c.View()
		if v.Favorites.Placeholder != EmptyFavoritesLabel || len(v.Favorites.Cards) != 0 {
			t.Errorf("expected empty-state placeholder, got %+v", v.Favorites)
		}
	})

	t.Run("Not Loaded Yet", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenHome)
		if v := h.c.View(); v.Favorites.Placeholder != LoadingFavoritesText {
			t.Errorf("expected loading placeholder, got %+v", v.Favorites)
		}
	})

	t.Run("Failures Keep Previous Grid", func(t *testing.T) {
		calls := 0
		svc := &fakes.BookService{FavoritesFunc: func(ctx context.Context) (*services.FavoritesResult, error) {
			calls++
			switch calls {
			case 1:
				return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{{Title: "Dune"}}}, nil
			case 2:
				return nil, errors.New("timeout")
			default:
				return &services.FavoritesResult{Success: false, Message: "Not authenticated"}, nil
			}
		}}
		h := newHarness(t, svc, ScreenHome)

		for range 3 {
			h.c.LoadFavorites()
			h.loop.Step(t)
		}

		v := h.c.View()
		if len(v.Favorites.Cards) != 1 || v.Favorites.Cards[0].Title != "Dune" {
			t.Errorf("expected previous grid to survive failures, got %+v", v.Favorites)
		}
	})

	t.Run("Latest Load Wins", func(t *testing.T) {
		first, second := make(chan struct{}), make(chan struct{})
		calls := make(chan int, 2)
		svc := &fakes.BookService{FavoritesFunc: func(ctx context.Context) (*services.FavoritesResult, error) {
			if <-calls == 1 {
				<-first
				return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{{Title: "old"}}}, nil
			}
			<-second
			return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{{Title: "new"}}}, nil
		}}
		h := newHarness(t, svc, ScreenHome)

		calls <- 1
		h.c.LoadFavorites()
		for len(calls) > 0 {
			time.Sleep(time.Millisecond)
		}
		calls <- 2
		h.c.LoadFavorites()

		close(second)
		h.loop.Step(t)
		close(first)
		h.loop.Step(t)

		v := h.c.View()
		if len(v.Favorites.Cards) != 1 || v.Favorites.Cards[0].Title != "new" {
			t.Errorf("expected the latest load to win, got %+v", v.Favorites.Cards)
		}
	})

	t.Run("Initial Load Resolving After Add Reload Is Dropped", func(t *testing.T) {
		gate := make(chan struct{})
		calls := make(chan int, 2)
		svc := &fakes.BookService{FavoritesFunc: func(ctx context.Context) (*services.FavoritesResult, error) {
			if <-calls == 1 {
				<-gate
				return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{}}, nil
			}
			return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{{Title: "Dune"}}}, nil
		}}
		h := newHarness(t, svc, ScreenHome)

		calls <- 1
		h.c.Start()
		for len(calls) > 0 {
			time.Sleep(time.Millisecond)
		}

		calls <- 2
		h.c.AddFavorite("Dune")
		h.loop.Step(t)
		h.loop.Step(t)

		v := h.c.View()
		if len(v.Favorites.Cards) != 1 || v.Favorites.Cards[0].Title != "Dune" {
			t.Fatalf("expected reload to show Dune, got %+v", v.Favorites)
		}

		close(gate)
		h.loop.Step(t)

		v = h.c.View()
		if len(v.Favorites.Cards) != 1 || v.Favorites.Cards[0].Title != "Dune" {
			t.Errorf("stale initial load replaced the grid: %+v", v.Favorites)
		}
		if v.Favorites.Placeholder != "" {
			t.Errorf("unexpected placeholder %q", v.Favorites.Placeholder)
		}
	})

	t.Run("Unparseable Date Falls Back To Raw", func(t *testing.T) {
		svc := &fakes.BookService{FavoritesFunc: func(ctx context.Context) (*services.FavoritesResult, error) {
			return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{{Title: "Dune", AddedAt: models.ParseTimestamp("sometime")}}}, nil
		}}
		h := newHarness(t, svc, ScreenHome)
		h.c.LoadFavorites()
		h.loop.Step(t)

		if card := h.c.View().Favorites.Cards[0]; card.Added != "Added sometime" {
			t.Errorf("unexpected added label %q", card.Added)
		}
	})
}

func TestSelectFavorite(t *testing.T) {
	h := newHarness(t, &fakes.BookService{}, ScreenHome)
	h.c.SelectFavorite("Dune")
	h.loop.Step(t)

	if got := h.svc.Args("Recommend"); len(got) != 1 || got[0] != "Dune" {
		t.Errorf("expected recommend for Dune, got %v", got)
	}
}
