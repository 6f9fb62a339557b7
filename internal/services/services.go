// package services defines interface BookService for interacting with the book recommendation API
package services

import (
	"context"

	"github.com/desertthunder/bookx/internal/models"
)

// BookService defines the remote operations the client consumes.
type BookService interface {
	// Login submits credentials; on success the session cookie is retained for later calls.
	Login(ctx context.Context, username, password string) (*StatusResult, error)

	// Register creates an account.
	Register(ctx context.Context, username, email, password string) (*StatusResult, error)

	// Logout ends the session and returns the HTTP status code.
	Logout(ctx context.Context) (int, error)

	// Search returns titles matching query in service order.
	Search(ctx context.Context, query string) ([]string, error)

	// Recommend requests up to n recommendations for the named book.
	Recommend(ctx context.Context, bookName string, n int) (*RecommendResult, error)

	// AddFavorite appends a title to the session's favorites.
	AddFavorite(ctx context.Context, title string) (*StatusResult, error)

	// Favorites fetches the full favorites collection.
	Favorites(ctx context.Context) (*FavoritesResult, error)
}

// StatusResult is the {success, message} envelope shared by auth and favorites mutations.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RecommendResult is the recommend response. Message is set when Success is false.
type RecommendResult struct {
	Success         bool          `json:"success"`
	Book            string        `json:"book"`
	Recommendations []models.Book `json:"recommendations"`
	Message         string        `json:"message,omitempty"`
	Suggestions     []string      `json:"suggestions,omitempty"`
}

// Set returns the successful result as a [models.RecommendationSet].
func (r *RecommendResult) Set() models.RecommendationSet {
	return models.RecommendationSet{SourceBook: r.Book, Items: r.Recommendations}
}

// FavoritesResult is the favorites listing response.
type FavoritesResult struct {
	Success   bool              `json:"success"`
	Favorites []models.Favorite `json:"favorites"`
	Message   string            `json:"message,omitempty"`
}
