package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinQueryLength is the shortest trimmed query, in characters, that issues a search.
	MinQueryLength = 2
	// DefaultRecommendations is the number of recommendations requested per selection.
	DefaultRecommendations = 6
)

// NormalizeQuery trims the raw input and reports whether it is long enough to search for.
func NormalizeQuery(text string) (string, bool) {
	q := strings.TrimSpace(text)
	return q, utf8.RuneCountInString(q) >= MinQueryLength
}

// Year is a publication year. The service sends it as either a JSON number or a string; unknown years are zero.
type Year int

// UnmarshalJSON accepts 1925, "1925", "N/A", and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*y = 0
		return nil
	}
	*y = Year(int(n))
	return nil
}

// MarshalJSON writes the year as a number.
func (y Year) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(y))), nil
}

func (y Year) String() string {
	if y == 0 {
		return "N/A"
	}
	return strconv.Itoa(int(y))
}

// Book is a recommendation result. Books have no identity beyond their title.
type Book struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Year       Year    `json:"year"`
	Similarity float64 `json:"similarity,omitempty"`

	// YearText holds a year the service sent as non-numeric text, such as "Unknown".
	YearText string `json:"-"`
}

// UnmarshalJSON decodes a book, keeping non-numeric year text in YearText.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	aux := struct {
		*plain
		Year json.RawMessage `json:"year"`
	}{plain: (*plain)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Year, b.YearText = 0, ""
	if len(aux.Year) == 0 {
		return nil
	}
	if err := b.Year.UnmarshalJSON(aux.Year); err != nil {
		return err
	}

	var s string
	if err := json.Unmarshal(aux.Year, &s); err == nil {
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseFloat(s, 64); err != nil && s != "" {
			b.YearText = s
		}
	}
	return nil
}

// MarshalJSON writes YearText in place of the year when it is set.
func (b Book) MarshalJSON() ([]byte, error) {
	type plain Book
	if b.YearText == "" {
		return json.Marshal(plain(b))
	}
	return json.Marshal(struct {
		plain
		Year string `json:"year"`
	}{plain(b), b.YearText})
}

// Published is the year as it should be shown.
func (b Book) Published() string {
	if b.YearText != "" {
		return b.YearText
	}
	return b.Year.String()
}

// RecommendationSet is the result of one successful recommend call.
type RecommendationSet struct {
	SourceBook string `json:"book"`
	Items      []Book `json:"recommendations"`
}

// Timestamp is a favorites added date. The store may send SQL or RFC 3339 layouts.
type Timestamp struct {
	time.Time
	Raw string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02",
}

// ParseTimestamp parses s with the known layouts; unparseable values keep only Raw.
func ParseTimestamp(s string) Timestamp {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Raw: s}
		}
	}
	return Timestamp{Raw: s}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Favorite is one entry of a user's favorites collection.
type Favorite struct {
	Title   string    `json:"title"`
	AddedAt Timestamp `json:"added_at"`
}
