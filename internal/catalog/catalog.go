// package catalog holds the development backend's book collection and its neighbor recommender
package catalog

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/shared"
)

const (
	// SearchLimit caps search results.
	SearchLimit = 20
	// BrowseLimit caps the listing returned for an empty query.
	BrowseLimit = 50
	// SuggestionLimit caps the titles offered when a book is not found.
	SuggestionLimit = 10
	// DefaultNeighbors is used when a caller asks for zero or fewer recommendations.
	DefaultNeighbors = 5

	demoSeed  = 42
	demoUsers = 100
)

// Catalog is an immutable set of books with a rating vector per title.
type Catalog struct {
	books   []models.Book
	ratings [][]float64
}

// New builds a catalog. ratings[i] is the rating vector for books[i]; vectors must share a length.
func New(books []models.Book, ratings [][]float64) *Catalog {
	return &Catalog{books: books, ratings: ratings}
}

// NewDemo returns the built-in demonstration catalog with deterministic ratings.
func NewDemo() *Catalog {
	r := rand.New(rand.NewPCG(demoSeed, demoSeed))

	ratings := make([][]float64, len(demoBooks))
	for i := range ratings {
		row := make([]float64, demoUsers)
		for j := range row {
			row[j] = float64(r.IntN(6))
		}
		ratings[i] = row
	}
	return New(demoBooks, ratings)
}

// Len returns the number of books.
func (c *Catalog) Len() int { return len(c.books) }

// Titles returns up to limit titles in catalog order; limit <= 0 returns all.
func (c *Catalog) Titles(limit int) []string {
	n := len(c.books)
	if limit > 0 && limit < n {
		n = limit
	}
	titles := make([]string, n)
	for i := range titles {
		titles[i] = c.books[i].Title
	}
	return titles
}

// Search returns titles containing query case-insensitively, capped at [SearchLimit].
// An empty query lists the first [BrowseLimit] titles.
func (c *Catalog) Search(query string) []string {
	if query == "" {
		return c.Titles(BrowseLimit)
	}

	q := strings.ToLower(query)
	matches := []string{}
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			matches = append(matches, b.Title)
			if len(matches) == SearchLimit {
				break
			}
		}
	}
	return matches
}

// Resolve maps a user-entered name to a catalog index.
//
// Candidates are tried in order: exact title, case- and whitespace-insensitive title, titles containing the name,
// then titles containing any word of the name.
func (c *Catalog) Resolve(name string) (int, bool) {
	if i := slices.IndexFunc(c.books, func(b models.Book) bool { return b.Title == name }); i >= 0 {
		return i, true
	}

	norm := shared.NormalizeTitle(name)
	if i := slices.IndexFunc(c.books, func(b models.Book) bool { return shared.NormalizeTitle(b.Title) == norm }); i >= 0 {
		return i, true
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return -1, false
	}
	if i := slices.IndexFunc(c.books, func(b models.Book) bool { return strings.Contains(strings.ToLower(b.Title), lower) }); i >= 0 {
		return i, true
	}

	words := strings.Fields(lower)
	i := slices.IndexFunc(c.books, func(b models.Book) bool {
		title := strings.ToLower(b.Title)
		return slices.ContainsFunc(words, func(w string) bool { return strings.Contains(title, w) })
	})
	return i, i >= 0
}

type neighbor struct {
	index      int
	similarity float64
}

// Recommend returns up to n books nearest to name by cosine similarity of their rating vectors.
// The second result is false when name cannot be resolved.
func (c *Catalog) Recommend(name string, n int) ([]models.Book, bool) {
	idx, ok := c.Resolve(name)
	if !ok {
		return nil, false
	}
	if n <= 0 {
		n = DefaultNeighbors
	}

	neighbors := make([]neighbor, 0, len(c.books)-1)
	for i := range c.books {
		if i == idx {
			continue
		}
		neighbors = append(neighbors, neighbor{index: i, similarity: cosine(c.ratings[idx], c.ratings[i])})
	}

	slices.SortStableFunc(neighbors, func(a, b neighbor) int {
		switch {
		case a.similarity > b.similarity:
			return -1
		case a.similarity < b.similarity:
			return 1
		default:
			return 0
		}
	})

	if n > len(neighbors) {
		n = len(neighbors)
	}

	out := make([]models.Book, n)
	for i, nb := range neighbors[:n] {
		book := c.books[nb.index]
		book.Similarity = math.Max(0, nb.similarity)
		out[i] = book
	}
	return out, true
}

// cosine returns the cosine similarity of a and b; zero vectors are dissimilar to everything.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
