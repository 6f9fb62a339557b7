package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bookx/internal/catalog"
	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Response messages shared with clients.
const (
	MsgFieldsRequired    = "All fields are required"
	MsgInvalidEmail      = "Invalid email address"
	MsgPasswordTooShort  = "Password must be at least 6 characters long"
	MsgUserExists        = "Username or email already exists"
	MsgRegistered        = "Registration successful"
	MsgLoggedIn          = "Login successful"
	MsgInvalidLogin      = "Invalid credentials"
	MsgLoggedOut         = "Logged out successfully"
	MsgBookNameRequired  = "Book name is required"
	MsgBookTitleRequired = "Book title is required"
	MsgNotAuthenticated  = "Not authenticated"
	MsgFavoriteAdded     = "Added to favorites"
	MsgInvalidBody       = "Invalid request body"
	MsgInternal          = "Internal server error"
)

// NotFoundMessage is the 404 message for a book the catalog cannot resolve.
func NotFoundMessage(name string) string {
	return fmt.Sprintf("Book \"%s\" not found. Try searching from the list or use Quick Picks below.", name)
}

// API serves the JSON endpoints consumed by the client.
type API struct {
	users     *repositories.UserRepository
	favorites *repositories.FavoriteRepository
	sessions  *repositories.SessionRepository
	catalog   *catalog.Catalog
	cookies   *cookieSigner
	logger    *log.Logger
}

// Register mounts every endpoint on router.
func (a *API) Register(router *BasicRouter) {
	router.HandleFunc(http.MethodPost, "/api/register", a.register)
	router.HandleFunc(http.MethodPost, "/api/login", a.login)
	router.HandleFunc(http.MethodPost, "/api/logout", a.logout)
	router.HandleFunc(http.MethodGet, "/api/books/search", a.search)
	router.HandleFunc(http.MethodPost, "/api/books/recommend", a.recommend)
	router.HandleFunc(http.MethodPost, "/api/favorites/add", a.requireUser(a.addFavorite))
	router.HandleFunc(http.MethodGet, "/api/favorites", a.requireUser(a.listFavorites))
	router.Handler(healthHandler{books: a.catalog.Len()})
}

func (a *API) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if UserIDFrom(r) == "" {
			writeError(w, http.StatusUnauthorized, MsgNotAuthenticated)
			return
		}
		next(w, r)
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=6"`
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if errs := validateStruct(req); errs != nil {
		msg := messageFor(errs, map[string]string{
			"notblank":     MsgFieldsRequired,
			"email.email":  MsgInvalidEmail,
			"password.min": MsgPasswordTooShort,
		}, MsgFieldsRequired)
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.logger.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	user := models.NewUser(strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), string(hash))
	if err := a.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, MsgUserExists)
			return
		}
		a.logger.Error("failed to create user", "username", user.Username(), "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	a.logger.Info("registered user", "username", user.Username())
	writeOK(w, MsgRegistered)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	user, err := a.users.GetByUsername(strings.TrimSpace(req.Username))
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, MsgInvalidLogin)
		return
	}
	if err != nil {
		a.logger.Error("failed to look up user", "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, MsgInvalidLogin)
		return
	}

	token, err := a.sessions.Create(user.ID())
	if err != nil {
		a.logger.Error("failed to create session", "user", user.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    a.cookies.sign(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeOK(w, MsgLoggedIn)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if token, ok := a.cookies.verify(c.Value); ok {
			if err := a.sessions.Delete(token); err != nil {
				a.logger.Warn("failed to delete session", "error", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeOK(w, MsgLoggedOut)
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	books := a.catalog.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, struct {
		Books []string `json:"books"`
	}{books})
}

type recommendRequest struct {
	BookName         string `json:"book_name" validate:"notblank"`
	NRecommendations *int   `json:"n_recommendations"`
}

type recommendResponse struct {
	Success         bool          `json:"success"`
	Book            string        `json:"book"`
	Recommendations []models.Book `json:"recommendations"`
}

func (a *API) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if errs := validateStruct(req); errs != nil {
		writeError(w, http.StatusBadRequest, MsgBookNameRequired)
		return
	}

	n := catalog.DefaultNeighbors
	if req.NRecommendations != nil {
		n = *req.NRecommendations
	}

	books, ok := a.catalog.Recommend(req.BookName, n)
	if !ok || len(books) == 0 {
		writeJSON(w, http.StatusNotFound, statusResponse{
			Success:     false,
			Message:     NotFoundMessage(req.BookName),
			Suggestions: a.catalog.Titles(catalog.SuggestionLimit),
		})
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{Success: true, Book: req.BookName, Recommendations: books})
}

type addFavoriteRequest struct {
	BookTitle string `json:"book_title" validate:"notblank"`
}

func (a *API) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if errs := validateStruct(req); errs != nil {
		writeError(w, http.StatusBadRequest, MsgBookTitleRequired)
		return
	}

	fav := models.NewStoredFavorite(UserIDFrom(r), req.BookTitle)
	if err := a.favorites.Create(fav); err != nil {
		a.logger.Error("failed to add favorite", "title", req.BookTitle, "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}
	writeOK(w, MsgFavoriteAdded)
}

type favoritesResponse struct {
	Success   bool              `json:"success"`
	Favorites []models.Favorite `json:"favorites"`
}

func (a *API) listFavorites(w http.ResponseWriter, r *http.Request) {
	rows, err := a.favorites.ListByUser(UserIDFrom(r))
	if err != nil {
		a.logger.Error("failed to list favorites", "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	favs := make([]models.Favorite, len(rows))
	for i, row := range rows {
		favs[i] = row.Favorite()
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Success: true, Favorites: favs})
}

// healthHandler reports liveness and catalog size.
type healthHandler struct {
	books int
}

func (h healthHandler) Routes() []string {
	return []string{"GET /healthz"}
}

func (h healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		Books  int    `json:"books"`
	}{"ok", h.books})
}
