package caption

import (
	"strings"
	"testing"
)

func TestParseCaptionOutputJSON(t *testing.T) {
	out := `{"dishName":"Poutine Poulet Buffalo","description":"Crispy buffalo chicken over fresh-cut fries.","suggestedCategory":"popular-dishes"}`

	r := parseCaptionOutput(out, "gallery")
	if r.DishName != "Poutine Poulet Buffalo" {
		t.Errorf("dish name = %q", r.DishName)
	}
	if r.SuggestedCategory != "popular-dishes" {
		t.Errorf("category = %q, model suggestion should win", r.SuggestedCategory)
	}
}

func TestParseCaptionOutputJSONNoCategory(t *testing.T) {
	out := `{"dishName":"Pizza Margherita","description":"Classic tomato and mozzarella."}`

	r := parseCaptionOutput(out, "deals")
	if r.SuggestedCategory != "deals" {
		t.Errorf("category = %q, want request category when model omits it", r.SuggestedCategory)
	}
}

func TestParseCaptionOutputFreeText(t *testing.T) {
	out := "A wood-fired pizza with basil on a rustic table."

	r := parseCaptionOutput(out, "")
	if r.DishName != "" {
		t.Errorf("dish name = %q, want empty for free-text fallback", r.DishName)
	}
	if r.Description != out {
		t.Errorf("description = %q", r.Description)
	}
	if r.SuggestedCategory != "popular-dishes" {
		t.Errorf("category = %q, want default fallback", r.SuggestedCategory)
	}
}

func TestBuildCaptionPromptLanguages(t *testing.T) {
	en := BuildCaptionPrompt("Milano Pizza Gatineau", "popular-dishes", "en")
	if !strings.Contains(en, "Milano Pizza Gatineau") {
		t.Error("prompt missing restaurant name")
	}
	fr := BuildCaptionPrompt("Milano Pizza Gatineau", "popular-dishes", "fr")
	if en == fr {
		t.Error("expected distinct prompts per language")
	}
	// Unknown language falls back to English.
	if got := BuildCaptionPrompt("X", "gallery", "de"); got != BuildCaptionPrompt("X", "gallery", "en") {
		t.Error("unknown language should fall back to English prompt")
	}
}
