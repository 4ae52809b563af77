package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ExportVersion moved 1.0 -> 1.1 when FAQs became a first-class
// section. Changes are additive only; existing field names are
// stable across versions.
const ExportVersion = "1.1"

// ExportDocument is the canonical interchange format downstream
// consumers (the site generator) rely on.
type ExportDocument struct {
	Restaurant         ExportRestaurant `json:"restaurant"`
	Operations         ExportOperations `json:"operations"`
	SocialMedia        ExportSocial     `json:"social_media"`
	PopularDishes      []ExportDish     `json:"popular_dishes"`
	Deals              []ExportDeal     `json:"deals"`
	Photos             []ExportPhoto    `json:"photos"`
	Faqs               []ExportFaq      `json:"faqs"`
	AdditionalComments string           `json:"additional_comments"`
	ExportMetadata     ExportMetadata   `json:"export_metadata"`
}

type ExportRestaurant struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Website       string    `json:"website"`
	FoundedYear   string    `json:"founded_year"`
	Story         string    `json:"story"`
	OwnerQuote    string    `json:"owner_quote"`
	AboutImageURL *string   `json:"about_image_url"`
	MenuPdfURL    *string   `json:"menu_pdf_url"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ExportOperations struct {
	Hours                string `json:"hours"`
	DeliveryAreas        string `json:"delivery_areas"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

type ExportSocial struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
}

type ExportDish struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
}

type ExportDeal struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
}

type ExportPhoto struct {
	ID           string `json:"id"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type ExportFaq struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
}

type ExportMetadata struct {
	ExportedAt    time.Time `json:"exported_at"`
	ExportVersion string    `json:"export_version"`
}

// --------------------------------------------------
// Exporter
// --------------------------------------------------

// Exporter serializes a persisted record to the interchange format.
// It always re-fetches fresh rows rather than reading an edit buffer.
// legacyFaqComments mirrors the FAQ block into additional_comments
// the way the pre-1.1 exports did, for consumers that still parse it
// out of there.
type Exporter struct {
	repo              Repository
	legacyFaqComments bool
}

func NewExporter(repo Repository, legacyFaqComments bool) *Exporter {
	return &Exporter{repo: repo, legacyFaqComments: legacyFaqComments}
}

func (e *Exporter) Export(ctx context.Context, id string) (*ExportDocument, error) {
	rec, err := e.repo.LoadRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildDocument(rec, time.Now().UTC(), e.legacyFaqComments), nil
}

// BuildDocument assembles the document from an already-loaded record.
// Deterministic for the same record apart from exportedAt.
func BuildDocument(rec *Record, exportedAt time.Time, legacyFaqComments bool) *ExportDocument {
	doc := &ExportDocument{
		Restaurant: ExportRestaurant{
			ID:            rec.ID,
			Name:          rec.RestaurantName,
			Address:       rec.Address,
			Email:         rec.Email,
			Phone:         rec.Phone,
			Website:       rec.Website,
			FoundedYear:   rec.FoundedYear,
			Story:         rec.Story,
			OwnerQuote:    rec.OwnerQuote,
			AboutImageURL: rec.AboutImageURL,
			MenuPdfURL:    rec.MenuFileURL,
			Status:        rec.Status,
			CreatedAt:     rec.CreatedAt,
			UpdatedAt:     rec.UpdatedAt,
		},
		Operations: ExportOperations{
			Hours:                rec.Hours,
			DeliveryAreas:        rec.DeliveryAreas,
			DeliveryInstructions: rec.DeliveryInstructions,
		},
		SocialMedia: ExportSocial{
			Instagram: rec.Instagram,
			Facebook:  rec.Facebook,
			Twitter:   rec.Twitter,
		},
		PopularDishes:      []ExportDish{},
		Deals:              []ExportDeal{},
		Photos:             []ExportPhoto{},
		Faqs:               []ExportFaq{},
		AdditionalComments: rec.Comments,
		ExportMetadata: ExportMetadata{
			ExportedAt:    exportedAt,
			ExportVersion: ExportVersion,
		},
	}

	for _, d := range rec.Dishes {
		doc.PopularDishes = append(doc.PopularDishes, ExportDish{
			ID:           d.ID,
			Name:         d.Name,
			Description:  d.Description,
			ImageURL:     d.ImageURL,
			DisplayOrder: d.DisplayOrder,
		})
	}

	for _, d := range rec.Deals {
		doc.Deals = append(doc.Deals, ExportDeal{
			ID:           d.ID,
			Title:        d.Title,
			Description:  d.Description,
			ImageURL:     d.ImageURL,
			DisplayOrder: d.DisplayOrder,
		})
	}

	for _, p := range rec.Photos {
		doc.Photos = append(doc.Photos, ExportPhoto{
			ID:           p.ID,
			ImageURL:     p.ImageURL,
			DisplayOrder: p.DisplayOrder,
		})
	}

	for _, f := range rec.Faqs {
		doc.Faqs = append(doc.Faqs, ExportFaq{
			Question:     f.Question,
			Answer:       f.Answer,
			DisplayOrder: f.DisplayOrder,
		})
	}

	if legacyFaqComments && len(rec.Faqs) > 0 {
		doc.AdditionalComments = appendLegacyFaqBlock(rec.Comments, rec.Faqs)
	}

	return doc
}

// appendLegacyFaqBlock reproduces the old comments-append fallback
// from before faqs had their own table.
func appendLegacyFaqBlock(comments string, faqs []Faq) string {
	type legacyFaq struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	list := make([]legacyFaq, 0, len(faqs))
	for _, f := range faqs {
		list = append(list, legacyFaq{Question: f.Question, Answer: f.Answer})
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return comments
	}

	if comments == "" {
		return "FAQs:\n" + string(raw)
	}
	return fmt.Sprintf("%s\n\nFAQs:\n%s", comments, raw)
}

// Filename returns the download name for an exported document.
func (d *ExportDocument) Filename() string {
	name := make([]rune, 0, len(d.Restaurant.Name))
	for _, r := range d.Restaurant.Name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			name = append(name, r)
		case r >= 'A' && r <= 'Z':
			name = append(name, r+('a'-'A'))
		default:
			name = append(name, '_')
		}
	}
	return string(name) + "_submission.json"
}
