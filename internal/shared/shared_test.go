package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{name: "basic normalization", title: "The Hobbit", want: "the hobbit"},
		{name: "extra whitespace", title: "  The   Hobbit  ", want: "the hobbit"},
		{name: "mixed case", title: "ThE HoBBiT", want: "the hobbit"},
		{name: "empty", title: "   ", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.title)
			if got != tt.want {
				t.Errorf("NormalizeTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggers(t *testing.T) {
	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "search")
		logger.Info("fired")

		if !strings.Contains(buf.String(), "component=search") {
			t.Errorf("expected component field in output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "bookx.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("hello")

		if got := mustRead(t, path); !strings.Contains(got, "hello") {
			t.Errorf("expected log line in file, got %q", got)
		}
	})

	t.Run("GenerateID is unique", func(t *testing.T) {
		if GenerateID() == GenerateID() {
			t.Error("expected distinct IDs")
		}
	})
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestBrowser(t *testing.T) {
	t.Run("SearchLink", func(t *testing.T) {
		got := SearchLink("The Hobbit", "J.R.R. Tolkien")
		want := "https://www.google.com/search?q=The+Hobbit+J.R.R.+Tolkien"
		if got != want {
			t.Errorf("SearchLink() = %q, want %q", got, want)
		}
	})

	t.Run("SearchLink without author", func(t *testing.T) {
		got := SearchLink("1984", "")
		if got != "https://www.google.com/search?q=1984" {
			t.Errorf("unexpected link %q", got)
		}
	})

	t.Run("OpenBrowser unsupported platform", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		t.Cleanup(func() { getRuntime = orig })

		err := OpenBrowser("https://example.com")
		if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	})
}
