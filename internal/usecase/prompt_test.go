package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildExtractionPrompt(t *testing.T) {
	t.Run("embeds the text and source url", func(t *testing.T) {
		prompt := BuildExtractionPrompt("Soup: Goulash 50", "http://example.com")

		if !strings.Contains(prompt, "Soup: Goulash 50") {
			t.Error("prompt does not contain the page text")
		}
		if !strings.Contains(prompt, "http://example.com") {
			t.Error("prompt does not contain the source url")
		}
	})

	t.Run("describes the expected schema", func(t *testing.T) {
		prompt := BuildExtractionPrompt("text", "http://example.com")

		for _, field := range []string{"restaurant_name", "menu_items", "daily_menu", "source_url", "is_vegetarian", "is_vegan", "calories", "health_score"} {
			if !strings.Contains(prompt, field) {
				t.Errorf("prompt does not mention field %q", field)
			}
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		a := BuildExtractionPrompt("text", "http://example.com")
		b := BuildExtractionPrompt("text", "http://example.com")
		if a != b {
			t.Error("two builds with the same inputs differ")
		}
	})

	t.Run("never splits a multi-byte rune at the cut", func(t *testing.T) {
		// Position "ř" (2 bytes) so the naive cut would land inside it.
		long := strings.Repeat("a", maxPromptText-1) + strings.Repeat("ř", 600)
		prompt := BuildExtractionPrompt(long, "http://example.com")

		if !utf8.ValidString(prompt) {
			t.Error("prompt contains an invalid UTF-8 sequence")
		}
		if strings.Contains(prompt, "ř") {
			t.Error("the partially covered rune survived the cut")
		}
	})

	t.Run("truncates long text by prefix cut", func(t *testing.T) {
		long := strings.Repeat("a", maxPromptText+1000)
		prompt := BuildExtractionPrompt(long, "http://example.com")

		if strings.Contains(prompt, long) {
			t.Error("prompt contains untruncated text")
		}
		if !strings.Contains(prompt, long[:maxPromptText]) {
			t.Error("prompt does not contain the prefix cut")
		}
	})
}
