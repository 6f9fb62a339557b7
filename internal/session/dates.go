package session

import (
	"os"
	"strings"

	"github.com/desertthunder/bookx/internal/models"
	"golang.org/x/text/language"
)

// dateLayouts pairs each supported locale with its short date layout. The first entry is the fallback.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.BrazilianPortuguese, "02/01/2006"},
	{language.Russian, "02.01.2006"},
	{language.Polish, "2.01.2006"},
	{language.Swedish, "2006-01-02"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, l := range dateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter renders favorites dates the way the viewer's locale writes short dates.
type DateFormatter struct {
	tag    language.Tag
	layout string
}

// NewDateFormatter picks the closest supported layout for tag.
func NewDateFormatter(tag language.Tag) DateFormatter {
	_, idx, _ := dateMatcher.Match(tag)
	return DateFormatter{tag: dateLayouts[idx].tag, layout: dateLayouts[idx].layout}
}

// Tag returns the matched locale.
func (f DateFormatter) Tag() language.Tag { return f.tag }

// Format renders ts, falling back to the raw server value when it could not be parsed.
func (f DateFormatter) Format(ts models.Timestamp) string {
	if ts.IsZero() {
		if ts.Raw == "" {
			return "unknown date"
		}
		return ts.Raw
	}
	layout := f.layout
	if layout == "" {
		layout = dateLayouts[0].layout
	}
	return ts.Format(layout)
}

// ResolveLocale parses configured as a BCP 47 tag. When it is empty, LC_ALL, LC_TIME and LANG are consulted in order.
func ResolveLocale(configured string) language.Tag {
	candidates := []string{configured, os.Getenv("LC_ALL"), os.Getenv("LC_TIME"), os.Getenv("LANG")}
	for _, c := range candidates {
		if tag, ok := parseLocale(c); ok {
			return tag
		}
	}
	return language.AmericanEnglish
}

// parseLocale accepts BCP 47 tags and POSIX names such as en_GB.UTF-8.
func parseLocale(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
