// HTTP implementation of [BookService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/desertthunder/bookx/internal/shared"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const defaultBaseURL string = "http://localhost:5000"

var _ BookService = (*APIService)(nil)

// APIService implements [BookService] against the book service's JSON API.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAPIService creates a new API client for baseURL.
//
// The client is copied and given a cookie jar when it has none, so the caller's client is never mutated.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	c := *client
	if c.Jar == nil {
		// cookiejar.New never returns a non-nil error.
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		c.Jar = jar
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &c,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

// SetRateLimit caps outgoing requests per second; zero or less removes the cap.
func (a *APIService) SetRateLimit(rps int) {
	if rps <= 0 {
		a.limiter.SetLimit(rate.Inf)
		return
	}
	a.limiter.SetLimit(rate.Limit(rps))
	a.limiter.SetBurst(rps)
}

// BaseURL returns the service root without a trailing slash.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

func (a *APIService) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// call sends payload (if any) and decodes the JSON body into out.
//
// Non-2xx responses with a JSON body are decoded like successes so the server message reaches the caller.
func (a *APIService) call(ctx context.Context, method, path string, payload, out any) error {
	var data []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", shared.ErrInvalidInput, err)
		}
		data = b
	}

	resp, err := a.do(ctx, method, path, data)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.IsJSON {
		if !resp.OK() {
			return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s returned non-JSON body", shared.ErrMalformedResponse, path)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return nil
}

// Login implements [BookService].
func (a *APIService) Login(ctx context.Context, username, password string) (*StatusResult, error) {
	var result StatusResult
	payload := map[string]string{"username": username, "password": password}
	if err := a.call(ctx, http.MethodPost, "/api/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register implements [BookService].
func (a *APIService) Register(ctx context.Context, username, email, password string) (*StatusResult, error) {
	var result StatusResult
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := a.call(ctx, http.MethodPost, "/api/register", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout implements [BookService].
func (a *APIService) Logout(ctx context.Context) (int, error) {
	resp, err := a.do(ctx, http.MethodPost, "/api/logout", nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return resp.StatusCode, nil
}

// Search implements [BookService].
func (a *APIService) Search(ctx context.Context, query string) ([]string, error) {
	var result struct {
		Books []string `json:"books"`
	}

	path := "/api/books/search?q=" + url.QueryEscape(query)
	if err := a.call(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Books, nil
}

// Recommend implements [BookService].
func (a *APIService) Recommend(ctx context.Context, bookName string, n int) (*RecommendResult, error) {
	var result RecommendResult
	payload := struct {
		BookName         string `json:"book_name"`
		NRecommendations int    `json:"n_recommendations"`
	}{bookName, n}

	if err := a.call(ctx, http.MethodPost, "/api/books/recommend", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddFavorite implements [BookService].
func (a *APIService) AddFavorite(ctx context.Context, title string) (*StatusResult, error) {
	var result StatusResult
	payload := map[string]string{"book_title": title}
	if err := a.call(ctx, http.MethodPost, "/api/favorites/add", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Favorites implements [BookService].
func (a *APIService) Favorites(ctx context.Context) (*FavoritesResult, error) {
	var result FavoritesResult
	if err := a.call(ctx, http.MethodGet, "/api/favorites", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
