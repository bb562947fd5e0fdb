package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{"simple two words", "Hello World", "hello-world"},
		{"title with year", "Hello World 2026", "hello-world-2026"},
		{"single word", "GoLang", "golang"},

		// --- Special characters ---
		{"punctuation marks", "Hello, World! How's it going?", "hello-world-hows-it-going"},
		{"ampersand and at sign", "Rock & Roll @ the Arena", "rock-roll-the-arena"},
		{"slashes and pipes", "Frontend/Backend | Full Stack", "frontend-backend-full-stack"},
		{"dots and underscores", "v1.2_release notes", "v1-2-release-notes"},
		{"hash and dollar", "Issue #42 costs $100", "issue-42-costs-100"},

		// --- Unicode ---
		{"accents folded", "Café Résumé Noël", "cafe-resume-noel"},
		{"german umlauts", "Über Größe", "uber-groe"},
		{"cyrillic dropped", "Привет world", "world"},
		{"emoji dropped", "Launch 🚀 day", "launch-day"},

		// --- Edge cases ---
		{"empty", "", ""},
		{"only symbols", "!!!@@@", ""},
		{"surrounding whitespace", "   padded   ", "padded"},
		{"tabs and newlines", "line\tone\ntwo", "line-one-two"},
		{"leading and trailing hyphens", "--edge--", "edge"},
		{"multiple spaces", "a    b", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerate_Truncates(t *testing.T) {
	got := Generate(strings.Repeat("word ", 30))
	if len(got) > MaxLength {
		t.Fatalf("len = %d, want <= %d", len(got), MaxLength)
	}
	if strings.HasSuffix(got, "-") || strings.HasSuffix(got, "wor") {
		t.Errorf("cut mid-word: %q", got)
	}

	long := strings.Repeat("x", 100)
	if got := Generate(long); len(got) != MaxLength {
		t.Errorf("unbroken input: len = %d, want %d", len(got), MaxLength)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("5 Tips for Q3", "project"); got != "5-tips-for-q3" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("🔥🔥", "project"); got != "project" {
		t.Errorf("Filename fallback = %q", got)
	}
}
