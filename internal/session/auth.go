package session

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/desertthunder/bookx/internal/eventloop"
	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/services"
)

const (
	// LoginRedirectDelay is how long the login success message shows before entering the home screen.
	LoginRedirectDelay = 1000 * time.Millisecond
	// SignupRedirectDelay is how long the signup success message shows before switching to the login form.
	SignupRedirectDelay = 1500 * time.Millisecond

	AuthErrorMessage     = "An error occurred. Please try again."
	PasswordTooShort     = "Password must be at least 6 characters long"
	SignupRedirectSuffix = " Redirecting to login..."
)

// AuthMode selects the form on the auth screen.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeSignup
)

// AuthState is the auth screen's form state. Message is shown under the active form.
type AuthState struct {
	Mode     AuthMode
	Message  string
	Kind     Kind
	Username string
	Pending  bool
}

// ShowLogin switches to the login form and clears messages.
func (c *Controller) ShowLogin() { c.switchMode(ModeLogin) }

// ShowSignup switches to the signup form and clears messages.
func (c *Controller) ShowSignup() { c.switchMode(ModeSignup) }

func (c *Controller) switchMode(m AuthMode) {
	c.cancelAuthTimer()
	c.state.Auth.Mode = m
	c.clearAuthMessage()
}

func (c *Controller) clearAuthMessage() {
	c.state.Auth.Message = ""
	c.state.Auth.Kind = KindSuccess
}

func (c *Controller) authMessage(msg string, kind Kind) {
	c.state.Auth.Message = msg
	c.state.Auth.Kind = kind
}

// Login submits credentials. On success the home screen is entered after [LoginRedirectDelay].
func (c *Controller) Login(username, password string) {
	live := c.live()
	c.state.Auth.Pending = true

	eventloop.Go(c.loop, func() (*services.StatusResult, error) {
		return c.svc.Login(c.ctx, username, password)
	}, func(res *services.StatusResult, err error) {
		if !live() {
			return
		}
		c.state.Auth.Pending = false

		switch {
		case err != nil:
			c.logger.Error("login failed", "username", username, "error", err)
			c.authMessage(AuthErrorMessage, KindError)
		case res == nil || !res.Success:
			c.authMessage(resultMessage(res), KindError)
		default:
			c.authMessage(res.Message, KindSuccess)
			c.cancelAuthTimer()
			c.authTimer = c.sched.AfterFunc(LoginRedirectDelay, func() {
				c.authTimer = nil
				c.enterHome()
			})
		}
	})
}

// Register creates an account. Passwords shorter than [models.MinPasswordLength] are rejected before any request.
func (c *Controller) Register(username, email, password string) {
	if utf8.RuneCountInString(password) < models.MinPasswordLength {
		c.authMessage(PasswordTooShort, KindError)
		return
	}

	live := c.live()
	c.state.Auth.Pending = true

	eventloop.Go(c.loop, func() (*services.StatusResult, error) {
		return c.svc.Register(c.ctx, username, email, password)
	}, func(res *services.StatusResult, err error) {
		if !live() {
			return
		}
		c.state.Auth.Pending = false

		switch {
		case err != nil:
			c.logger.Error("register failed", "username", username, "error", err)
			c.authMessage(AuthErrorMessage, KindError)
		case res == nil || !res.Success:
			c.authMessage(resultMessage(res), KindError)
		default:
			c.authMessage(res.Message+SignupRedirectSuffix, KindSuccess)
			c.cancelAuthTimer()
			c.authTimer = c.sched.AfterFunc(SignupRedirectDelay, func() {
				c.authTimer = nil
				c.state.Auth.Mode = ModeLogin
				c.state.Auth.Username = username
				c.clearAuthMessage()
			})
		}
	})
}

// Logout ends the session. Any 2xx status returns to the auth screen with fresh state; failures are logged only.
func (c *Controller) Logout() {
	live := c.live()

	eventloop.Go(c.loop, func() (int, error) {
		return c.svc.Logout(c.ctx)
	}, func(status int, err error) {
		if !live() {
			return
		}

		switch {
		case err != nil:
			c.logger.Error("logout failed", "error", err)
		case status < http.StatusOK || status >= http.StatusMultipleChoices:
			c.logger.Warn("logout rejected", "status", status)
		default:
			c.reset()
		}
	})
}

func (c *Controller) enterHome() {
	c.state.Screen = ScreenHome
	c.state.Focus = SectionSearch
	c.clearAuthMessage()
	c.LoadFavorites()
}

func resultMessage(res *services.StatusResult) string {
	if res == nil || res.Message == "" {
		return AuthErrorMessage
	}
	return res.Message
}
