package seoname

import (
	"fmt"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Poutine Poulet Buffalo!": "poutine-poulet-buffalo",
		"Crème Brûlée":            "creme-brulee",
		"  Pizza   Spéciale  ":    "pizza-speciale",
		"--a--b--":                "a-b",
		"":                        "",
		"!!!":                     "",
		"Sous-Marin Steak":        "sous-marin-steak",
	}

	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Poutine Poulet Buffalo!",
		"Crème Brûlée",
		"plain-slug-already",
		"   spaces   everywhere   ",
		"MiXeD CaSe 123",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestBuildSEOFilename(t *testing.T) {
	if got := BuildSEOFilename("Pizza Special", "popular-dishes", "milano"); got != "pizza-special-milano.webp" {
		t.Errorf("dish template: got %q", got)
	}

	if got := BuildSEOFilename("x", "gallery", "milano"); got != "milano-x.webp" {
		t.Errorf("gallery template: got %q", got)
	}

	if got := BuildSEOFilename("Family Pack", "deals", "milano"); got != "family-pack-deal-milano.webp" {
		t.Errorf("deal template: got %q", got)
	}

	wantMenu := fmt.Sprintf("menu-milano-%d.webp", time.Now().Year())
	if got := BuildSEOFilename("ignored", "menu", "milano"); got != wantMenu {
		t.Errorf("menu template: got %q, want %q", got, wantMenu)
	}

	// unknown category falls back to the dish template
	if got := BuildSEOFilename("Thing", "mystery-category", "milano"); got != "thing-milano.webp" {
		t.Errorf("fallback template: got %q", got)
	}

	// empty brand falls back to the default
	if got := BuildSEOFilename("Pizza Special", "popular-dishes", ""); got != "pizza-special-milano.webp" {
		t.Errorf("default brand: got %q", got)
	}
}

func TestCategorySuggestions(t *testing.T) {
	for _, cat := range []string{"popular-dishes", "gallery", "deals", "menu"} {
		slugs := CategorySuggestions(cat)
		if len(slugs) == 0 {
			t.Errorf("no suggestions for %q", cat)
		}
		for _, slug := range slugs {
			if slug != Sanitize(slug) {
				t.Errorf("suggestion %q for %q is not in sanitized form", slug, cat)
			}
		}
	}

	if got := CategorySuggestions("mystery-category"); len(got) != 0 {
		t.Errorf("unknown category returned suggestions: %v", got)
	}
}
