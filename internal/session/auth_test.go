package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/services"
	"github.com/desertthunder/bookx/internal/testing/fakes"
)

func TestAuthForms(t *testing.T) {
	t.Run("Toggling Clears Messages", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenAuth)
		h.c.ShowSignup()
		h.c.Register("reader", "r@example.com", "123")

		if v := h.c.View().Auth; v.Message != PasswordTooShort || v.MessageKind != KindError || v.Title != "Sign Up" {
			t.Fatalf("unexpected auth view %+v", v)
		}

		h.c.ShowLogin()
		if v := h.c.View().Auth; v.Message != "" || v.Mode != ModeLogin {
			t.Errorf("expected cleared login form, got %+v", v)
		}
	})

	t.Run("Short Password Sends Nothing", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenAuth)
		h.c.ShowSignup()
		h.c.Register("reader", "r@example.com", "12345")

		if h.loop.Pending() != 0 || h.svc.Calls("Register") != 0 {
			t.Error("expected validation to stop the request")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success Enters Home After Delay", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenAuth)
		h.c.Login("reader", "secret1")
		if !h.c.View().Auth.Pending {
			t.Error("expected pending flag while logging in")
		}
		h.loop.Step(t)

		v := h.c.View()
		if v.Auth.Message != "Login successful" || v.Auth.MessageKind != KindSuccess || v.Auth.Pending {
			t.Fatalf("unexpected auth view %+v", v.Auth)
		}

		h.sched.Advance(LoginRedirectDelay - time.Millisecond)
		if h.c.View().Screen != ScreenAuth {
			t.Fatal("navigated before the redirect delay")
		}
		h.sched.Advance(time.Millisecond)
		if h.c.View().Screen != ScreenHome {
			t.Fatal("expected home screen")
		}

		h.loop.Step(t)
		if h.svc.Calls("Favorites") != 1 {
			t.Errorf("expected favorites to load on entering home, got %d", h.svc.Calls("Favorites"))
		}
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		svc := &fakes.BookService{LoginFunc: func(ctx context.Context, u, p string) (*services.StatusResult, error) {
			return &services.StatusResult{Message: "Invalid credentials"}, nil
		}}
		h := newHarness(t, svc, ScreenAuth)
		h.c.Login("reader", "wrong")
		h.loop.Step(t)

		if v := h.c.View().Auth; v.Message != "Invalid credentials" || v.MessageKind != KindError {
			t.Errorf("unexpected auth view %+v", v)
		}
		if h.sched.Active() != 0 {
			t.Error("expected no redirect")
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		svc := &fakes.BookService{LoginFunc: func(ctx context.Context, u, p string) (*services.StatusResult, error) {
			return nil, errors.New("dial tcp: refused")
		}}
		h := newHarness(t, svc, ScreenAuth)
		h.c.Login("reader", "secret1")
		h.loop.Step(t)

		if v := h.c.View().Auth; v.Message != AuthErrorMessage {
			t.Errorf("expected generic message, got %q", v.Message)
		}
	})
}

func TestRegister(t *testing.T) {
	t.Run("Success Switches To Login With Username", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenAuth)
		h.c.ShowSignup()
		h.c.Register("reader", "r@example.com", "secret1")
		h.loop.Step(t)

		if v := h.c.View().Auth; v.Message != "Registration successful Redirecting to login..." {
			t.Fatalf("unexpected message %q", v.Message)
		}

		h.sched.Advance(SignupRedirectDelay)
		v := h.c.View().Auth
		if v.Mode != ModeLogin || v.Username != "reader" || v.Message != "" {
			t.Errorf("unexpected auth view after redirect %+v", v)
		}
	})

	t.Run("Manual Toggle Cancels Redirect", func(t *testing.T) {
		h := newHarness(t, &fakes.BookService{}, ScreenAuth)
		h.c.ShowSignup()
		h.c.Register("reader", "r@example.com", "secret1")
		h.loop.Step(t)

		h.c.ShowSignup()
		h.sched.Advance(SignupRedirectDelay)
		if v := h.c.View().Auth; v.Mode != ModeSignup || v.Username != "" {
			t.Errorf("expected redirect to be cancelled, got %+v", v)
		}
	})

	t.Run("Duplicate User", func(t *testing.T) {
		svc := &fakes.BookService{RegisterFunc: func(ctx context.Context, u, e, p string) (*services.StatusResult, error) {
			return &services.StatusResult{Message: "Username or email already exists"}, nil
		}}
		h := newHarness(t, svc, ScreenAuth)
		h.c.Register("reader", "r@example.com", "secret1")
		h.loop.Step(t)

		if v := h.c.View().Auth; v.Message != "Username or email already exists" || v.MessageKind != KindError {
			t.Errorf("unexpected auth view %+v", v)
		}
	})
}

func TestLogout(t *testing.T) {
	populated := func(t *testing.T, svc *fakes.BookService) *harness {
		t.Helper()
		svc.FavoritesFunc = func(ctx context.Context) (*services.FavoritesResult, error) {
			return &services.FavoritesResult{Success: true, Favorites: []models.Favorite{{Title: "Dune"}}}, nil
		}
		h := newHarness(t, svc, ScreenHome)
		h.c.LoadFavorites()
		h.loop.Step(t)
		h.c.SelectBook("Dune")
		h.loop.Step(t)
		return h
	}

	t.Run("OK Status Resets Session", func(t *testing.T) {
		for _, status := range []int{http.StatusOK, http.StatusNoContent} {
			h := populated(t, &fakes.BookService{LogoutFunc: func(context.Context) (int, error) { return status, nil }})
			h.c.Logout()
			h.loop.Step(t)

			v := h.c.View()
			if v.Screen != ScreenAuth {
				t.Errorf("status %d: expected auth screen", status)
			}
			if v.Recommendations != nil || len(v.Favorites.Cards) != 0 || v.Search.Input != "" {
				t.Errorf("status %d: expected session state to be cleared, got %+v", status, v)
			}
			if len(v.QuickPicks) != 2 {
				t.Errorf("status %d: expected quick picks to survive, got %v", status, v.QuickPicks)
			}
		}
	})

	t.Run("Error Stays", func(t *testing.T) {
		tt := []struct {
			name   string
			logout func(context.Context) (int, error)
		}{
			{name: "server error", logout: func(context.Context) (int, error) { return http.StatusInternalServerError, nil }},
			{name: "transport error", logout: func(context.Context) (int, error) { return 0, errors.New("offline") }},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				h := populated(t, &fakes.BookService{LogoutFunc: tc.logout})
				h.c.Logout()
				h.loop.Step(t)

				v := h.c.View()
				if v.Screen != ScreenHome || v.Recommendations == nil || len(v.Favorites.Cards) != 1 {
					t.Errorf("expected to stay on home with state intact, got %+v", v)
				}
			})
		}
	})

	t.Run("In-Flight Responses After Logout Are Dropped", func(t *testing.T) {
		gate := make(chan struct{})
		svc := &fakes.BookService{RecommendFunc: func(ctx context.Context, name string, n int) (*services.RecommendResult, error) {
			<-gate
			return &services.RecommendResult{Success: true, Book: name}, nil
		}}
		h := newHarness(t, svc, ScreenHome)
		h.c.SelectBook("Dune")
		h.c.Logout()
		h.loop.Step(t)

		close(gate)
		h.loop.Step(t)

		if v := h.c.View(); v.Recommendations != nil || v.Loading {
			t.Errorf("expected stale recommendation to be dropped, got %+v", v)
		}
	})
}
