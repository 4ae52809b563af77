package wizard

import "tavolo/internal/optimize"

// Draft is the in-memory submission being filled in by one session.
// File fields hold raw blobs, never storage URLs; the persister is
// the only component that turns blobs into URLs.
type Draft struct {
	BusinessInfo  BusinessInfo    `json:"business_info"`
	About         About           `json:"about"`
	Dishes        []Dish          `json:"dishes"`
	Deals         []Deal          `json:"deals"`
	MenuFile      *optimize.File  `json:"-"`
	DeliveryHours DeliveryHours   `json:"delivery_hours"`
	Photos        []optimize.File `json:"-"`
	Fonts         Fonts           `json:"fonts"`
	Faqs          []Faq           `json:"faqs"`
	Social        Social          `json:"social"`
}

func NewDraft() *Draft {
	return &Draft{}
}

type BusinessInfo struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Website           string `json:"website"`
	OnlineOrderingURL string `json:"online_ordering_url"`

	Logo      *optimize.File `json:"-"`
	HeroImage *optimize.File `json:"-"`
}

type About struct {
	FoundedYear string `json:"founded_year"`
	Story       string `json:"story"`
	OwnerQuote  string `json:"owner_quote"`

	AboutImage     *optimize.File  `json:"-"`
	CustomSections []CustomSection `json:"custom_sections"`
}

// CustomSection is an extra "our story" block; position runs 1..10.
type CustomSection struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Position    int            `json:"position"`
	Image       *optimize.File `json:"-"`
}

type Dish struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       *optimize.File `json:"-"`
}

type Deal struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       *optimize.File `json:"-"`
}

// Deal cardinality, enforced when the deals section is updated.
// Zero deals is allowed; a non-empty list must be 2..5.
const (
	MinDeals = 2
	MaxDeals = 5
)

type DeliveryHours struct {
	Hours         string `json:"hours"`
	DeliveryAreas string `json:"delivery_areas"`
	Instructions  string `json:"instructions"`
}

type Social struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Comments  string `json:"comments"`
}

type Fonts struct {
	TitleFont     string `json:"title_font"`
	ParagraphFont string `json:"paragraph_font"`
}

type Faq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PopularFonts is the curated list offered by the font step.
var PopularFonts = []string{
	"Inter",
	"Playfair Display",
	"Montserrat",
	"Lora",
	"Open Sans",
	"Poppins",
	"Merriweather",
	"Roboto",
	"Source Sans Pro",
	"Crimson Text",
}
