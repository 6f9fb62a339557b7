// package formatter provides functions to export favorites and recommendations to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/shared"
)

// Format is an export format selected with --format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ParseFormat accepts csv, md/markdown, text/txt and json, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want csv, md, text or json)", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

func addedAt(ts models.Timestamp) string {
	if ts.IsZero() {
		return ts.Raw
	}
	return ts.UTC().Format(time.RFC3339)
}

func addedDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return ts.Raw
	}
	return ts.Format("2006-01-02")
}

// FavoritesToCSV converts favorites to CSV format with columns: Title, Added
func FavoritesToCSV(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Title", "Added"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, fav := range favorites {
		if err := writer.Write([]string{fav.Title, addedAt(fav.AddedAt)}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// FavoritesToMarkdown converts favorites to a Markdown list
func FavoritesToMarkdown(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	buf.WriteString(fmt.Sprintf("**Books**: %d\n\n", len(favorites)))

	for i, fav := range favorites {
		buf.WriteString(fmt.Sprintf("%d. %s (added %s)\n", i+1, fav.Title, addedDate(fav.AddedAt)))
	}

	return buf.Bytes(), nil
}

// FavoritesToText converts favorites to plain text format
func FavoritesToText(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	if len(favorites) == 0 {
		buf.WriteString("No favorites yet. Start exploring!\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("Favorites: %d\n\n", len(favorites)))
	for i, fav := range favorites {
		buf.WriteString(fmt.Sprintf("%d. %s  [%s]\n", i+1, fav.Title, addedDate(fav.AddedAt)))
	}

	return buf.Bytes(), nil
}

// RecommendationsToCSV converts a recommendation set to CSV format with columns: Rank, Title, Author, Year, Similarity
func RecommendationsToCSV(set models.RecommendationSet) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Rank", "Title", "Author", "Year", "Similarity"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, book := range set.Items {
		record := []string{
			strconv.Itoa(i + 1),
			book.Title,
			book.Author,
			book.Published(),
			strconv.FormatFloat(book.Similarity, 'f', 3, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecommendationsToMarkdown converts a recommendation set to Markdown with a search link per book
func RecommendationsToMarkdown(set models.RecommendationSet) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Recommendations for \"%s\"\n\n", set.SourceBook))
	buf.WriteString(fmt.Sprintf("**Books**: %d\n\n", len(set.Items)))

	for i, book := range set.Items {
		link := shared.SearchLink(book.Title, book.Author)
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) by %s (%s)\n", i+1, book.Title, link, book.Author, book.Published()))
	}

	return buf.Bytes(), nil
}

// RecommendationsToText converts a recommendation set to plain text format
func RecommendationsToText(set models.RecommendationSet) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Recommendations for \"%s\"\n\n", set.SourceBook))
	for i, book := range set.Items {
		buf.WriteString(fmt.Sprintf("%d. %s by %s\n   Published: %s\n", i+1, book.Title, book.Author, book.Published()))
	}

	return buf.Bytes(), nil
}

// ToJSON encodes v as indented JSON with a trailing newline.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Favorites renders favorites in format f.
func Favorites(f Format, favorites []models.Favorite) ([]byte, error) {
	switch f {
	case FormatCSV:
		return FavoritesToCSV(favorites)
	case FormatMarkdown:
		return FavoritesToMarkdown(favorites)
	case FormatJSON:
		return ToJSON(favorites)
	default:
		return FavoritesToText(favorites)
	}
}

// Recommendations renders a recommendation set in format f.
func Recommendations(f Format, set models.RecommendationSet) ([]byte, error) {
	switch f {
	case FormatCSV:
		return RecommendationsToCSV(set)
	case FormatMarkdown:
		return RecommendationsToMarkdown(set)
	case FormatJSON:
		return ToJSON(set)
	default:
		return RecommendationsToText(set)
	}
}

// WriteExport writes data to path, creating parent directories.
//
// An empty path defaults to {base}{ext} in the working directory.
func WriteExport(data []byte, path, base string, f Format) (string, error) {
	if path == "" {
		path = base + f.Extension()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
