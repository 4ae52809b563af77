package submission

import "time"

// Status is one-directional: submitted -> live, flipped once by an
// administrator. No other states exist.
const (
	StatusSubmitted = "submitted"
	StatusLive      = "live"
)

// Submission is the durable parent row for one restaurant intake.
type Submission struct {
	ID string `json:"id"`

	RestaurantName    string `json:"restaurant_name"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Website           string `json:"website"`
	OnlineOrderingURL string `json:"online_ordering_url"`

	LogoURL      *string `json:"logo_url,omitempty"`
	HeroImageURL *string `json:"hero_image_url,omitempty"`

	FoundedYear   string  `json:"founded_year"`
	Story         string  `json:"story"`
	OwnerQuote    string  `json:"owner_quote"`
	AboutImageURL *string `json:"about_image_url,omitempty"`
	MenuFileURL   *string `json:"menu_pdf_url,omitempty"`

	Hours                string `json:"hours"`
	DeliveryAreas        string `json:"delivery_areas"`
	DeliveryInstructions string `json:"delivery_instructions"`

	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Comments  string `json:"comments"`

	TitleFont     string `json:"title_font"`
	ParagraphFont string `json:"paragraph_font"`

	Status  string `json:"status"`
	Version int    `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Dish struct {
	ID           string  `json:"id"`
	SubmissionID string  `json:"restaurant_submission_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"image_url,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type Deal struct {
	ID           string  `json:"id"`
	SubmissionID string  `json:"restaurant_submission_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"image_url,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type Photo struct {
	ID           string `json:"id"`
	SubmissionID string `json:"restaurant_submission_id"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type Faq struct {
	ID           string `json:"id"`
	SubmissionID string `json:"restaurant_submission_id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
}

// CustomSection is an extra about-us block; position runs 1..10.
type CustomSection struct {
	ID           string  `json:"id"`
	SubmissionID string  `json:"restaurant_submission_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"image_url,omitempty"`
	Position     int     `json:"position"`
}

// Record is a parent row plus all of its child collections, loaded
// or written together.
type Record struct {
	Submission
	Dishes   []Dish          `json:"dishes"`
	Deals    []Deal          `json:"deals"`
	Photos   []Photo         `json:"photos"`
	Faqs     []Faq           `json:"faqs"`
	Sections []CustomSection `json:"custom_sections"`
}
