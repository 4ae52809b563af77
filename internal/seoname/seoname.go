package seoname

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultBrand is used when the caller does not pass a brand token.
const DefaultBrand = "milano"

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// --------------------------------------------------
// Sanitize free text into an SEO-safe slug
// --------------------------------------------------
//
// Lower-cases, folds diacritics, keeps only [a-z0-9 -],
// collapses whitespace runs and repeated hyphens, trims
// leading/trailing hyphens. Total: never fails, degenerate
// input yields "".
func Sanitize(text string) string {
	lower := strings.ToLower(text)

	folded, _, err := transform.String(stripAccents, lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	// whitespace runs -> single hyphen
	slug := strings.Join(strings.Fields(b.String()), "-")

	// repeated hyphens -> single, trim the ends
	var parts []string
	for _, p := range strings.Split(slug, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// --------------------------------------------------
// Category-keyed filename templates
// --------------------------------------------------
func BuildSEOFilename(itemName, category, brand string) string {
	if brand == "" {
		brand = DefaultBrand
	}

	name := Sanitize(itemName)

	switch Sanitize(category) {
	case "gallery":
		return fmt.Sprintf("%s-%s.webp", brand, name)
	case "deals":
		return fmt.Sprintf("%s-deal-%s.webp", name, brand)
	case "menu":
		return fmt.Sprintf("menu-%s-%d.webp", brand, time.Now().Year())
	default:
		// popular-dishes and anything unrecognised
		return fmt.Sprintf("%s-%s.webp", name, brand)
	}
}

// CategorySuggestions returns example slugs shown to operators
// in the batch rename tool.
func CategorySuggestions(category string) []string {
	suggestions := map[string][]string{
		"popular-dishes": {
			"poutine-poulet-buffalo",
			"sous-marin-steak-philly",
			"pizza-special-milano",
			"penne-poulet-alfredo",
			"ailes-de-poulet",
		},
		"gallery": {
			"restaurant-interieur",
			"cuisine-milano",
			"salle-manger",
			"terrasse",
			"equipe-milano",
		},
		"deals": {
			"pizza-special-deal",
			"combo-meal-deal",
			"family-pack-deal",
		},
		"menu": {
			"menu-complet",
			"carte-plats",
			"menu-principal",
		},
	}
	return suggestions[category]
}
