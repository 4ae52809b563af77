package submission

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func exportFixture() *Record {
	return &Record{
		Submission: Submission{
			ID:             "sub-1",
			RestaurantName: "Milano Pizza",
			Address:        "123 Rue Principale",
			Email:          "hello@milano.example",
			Hours:          "11-23",
			Instagram:      "@milano",
			Comments:       "call ahead for large orders",
			Status:         StatusSubmitted,
			CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Dishes: []Dish{
			{ID: "d1", Name: "Poutine", Description: "classic", DisplayOrder: 1},
		},
		Photos: []Photo{
			{ID: "p1", ImageURL: "http://cdn/x.webp", DisplayOrder: 1},
		},
		Faqs: []Faq{
			{ID: "f1", Question: "Delivery?", Answer: "Yes", DisplayOrder: 1},
		},
	}
}

func TestBuildDocumentDeterministicApartFromTimestamp(t *testing.T) {
	rec := exportFixture()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := BuildDocument(rec, at, false)
	b := BuildDocument(rec, at.Add(time.Hour), false)

	// strip the only nondeterministic field
	a.ExportMetadata.ExportedAt = time.Time{}
	b.ExportMetadata.ExportedAt = time.Time{}

	rawA, _ := json.Marshal(a)
	rawB, _ := json.Marshal(b)

	if string(rawA) != string(rawB) {
		t.Errorf("export not byte-identical apart from exported_at:\n%s\n%s", rawA, rawB)
	}
}

func TestDocumentSectionsAndVersion(t *testing.T) {
	doc := BuildDocument(exportFixture(), time.Now().UTC(), false)

	if doc.ExportMetadata.ExportVersion != ExportVersion {
		t.Errorf("version = %q", doc.ExportMetadata.ExportVersion)
	}
	if doc.Restaurant.Name != "Milano Pizza" {
		t.Errorf("restaurant section wrong: %+v", doc.Restaurant)
	}
	if len(doc.PopularDishes) != 1 || doc.PopularDishes[0].Name != "Poutine" {
		t.Errorf("popular_dishes wrong: %+v", doc.PopularDishes)
	}
	if len(doc.Faqs) != 1 {
		t.Errorf("faqs missing from document")
	}
	// empty collections serialize as [], not null
	raw, _ := json.Marshal(doc)
	if strings.Contains(string(raw), `"deals":null`) {
		t.Errorf("empty deals must serialize as []")
	}
	if doc.AdditionalComments != "call ahead for large orders" {
		t.Errorf("additional_comments = %q", doc.AdditionalComments)
	}
}

func TestLegacyFaqCommentsMirror(t *testing.T) {
	doc := BuildDocument(exportFixture(), time.Now().UTC(), true)

	if !strings.Contains(doc.AdditionalComments, "FAQs:") {
		t.Errorf("legacy mode should append a FAQ block, got %q", doc.AdditionalComments)
	}
	if !strings.Contains(doc.AdditionalComments, "Delivery?") {
		t.Errorf("faq content missing from legacy comments")
	}
	if !strings.HasPrefix(doc.AdditionalComments, "call ahead") {
		t.Errorf("original comments must stay in front")
	}
}

func TestExportFilename(t *testing.T) {
	doc := BuildDocument(exportFixture(), time.Now().UTC(), false)
	if got := doc.Filename(); got != "milano_pizza_submission.json" {
		t.Errorf("filename = %q", got)
	}
}
