package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"tavolo/internal/optimize"
)

// --------------------------------------------------
// Steps
// --------------------------------------------------

const (
	StepBusinessInfo = iota
	StepAbout
	StepDishes
	StepDeals
	StepMenu
	StepHours
	StepPhotos
	StepFonts
	StepFaqs
	StepSocial

	StepCount = 10
)

var StepNames = [StepCount]string{
	"Business Info",
	"About Us",
	"Popular Dishes",
	"Deals & Offers",
	"Menu Upload",
	"Delivery & Hours",
	"Photos",
	"Fonts & Style",
	"FAQs",
	"Social & Extras",
}

// StepRules lists required fields per step. Every list is empty on
// purpose: nothing is mandatory in the wizard (product decision,
// not an oversight). Keeping the table means validation can be
// switched back on without restructuring the machine.
var StepRules = map[int][]string{
	StepBusinessInfo: {},
	StepAbout:        {},
	StepDishes:       {},
	StepDeals:        {},
	StepMenu:         {},
	StepHours:        {},
	StepPhotos:       {},
	StepFonts:        {},
	StepFaqs:         {},
	StepSocial:       {},
}

// ErrIncompleteStep marks a Next refused by StepRules, as opposed to
// a failed persist on the terminal transition.
var ErrIncompleteStep = errors.New("incomplete step")

// Persister receives the finished draft on the terminal transition.
type Persister interface {
	Persist(ctx context.Context, draft *Draft) (string, error)
}

// --------------------------------------------------
// Wizard state machine
// --------------------------------------------------

type Wizard struct {
	mu        sync.Mutex
	current   int
	completed map[int]bool
	draft     *Draft
	persister Persister
}

func New(persister Persister) *Wizard {
	return &Wizard{
		completed: make(map[int]bool),
		draft:     NewDraft(),
		persister: persister,
	}
}

func (w *Wizard) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// CompletedSteps is for progress display only, it gates nothing.
func (w *Wizard) CompletedSteps() []int {
	w.mu.Lock()
	defer w.mu.Unlock()

	steps := make([]int, 0, len(w.completed))
	for s := range w.completed {
		steps = append(steps, s)
	}
	sort.Ints(steps)
	return steps
}

func (w *Wizard) Draft() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Back decrements the step; no-op at step 0. Data is never discarded.
func (w *Wizard) Back() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current > 0 {
		w.current--
	}
	return w.current
}

// Next marks the current step completed and advances. On the last
// step it triggers persistence instead; success resets the machine
// to a fresh empty draft at step 0.
func (w *Wizard) Next(ctx context.Context) (submissionID string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if missing := w.missingFields(w.current); len(missing) > 0 {
		return "", fmt.Errorf("%w: %q requires %v", ErrIncompleteStep, StepNames[w.current], missing)
	}

	w.completed[w.current] = true

	if w.current < StepCount-1 {
		w.current++
		return "", nil
	}

	if w.persister == nil {
		return "", errors.New("no persister configured")
	}

	id, err := w.persister.Persist(ctx, w.draft)
	if err != nil {
		// Stay on the last step so the user can retry the submit.
		return "", err
	}

	w.current = 0
	w.completed = make(map[int]bool)
	w.draft = NewDraft()
	return id, nil
}

// missingFields consults StepRules. All lists are empty today, so
// this never blocks; callers still get the hook for later.
func (w *Wizard) missingFields(step int) []string {
	rules := StepRules[step]
	if len(rules) == 0 {
		return nil
	}

	var missing []string
	for _, field := range rules {
		if !w.draft.hasValue(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func (d *Draft) hasValue(field string) bool {
	switch field {
	case "name":
		return d.BusinessInfo.Name != ""
	case "address":
		return d.BusinessInfo.Address != ""
	case "email":
		return d.BusinessInfo.Email != ""
	default:
		return true
	}
}

// --------------------------------------------------
// Field mutation
// --------------------------------------------------

// Update merges a partial JSON value into the named draft section.
// Scalar sections merge field-wise; list sections are replaced
// wholesale, matching how the form submits them.
func (w *Wizard) Update(section string, data json.RawMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch section {
	case "business_info":
		return json.Unmarshal(data, &w.draft.BusinessInfo)
	case "about":
		return json.Unmarshal(data, &w.draft.About)
	case "dishes":
		return replaceList(data, &w.draft.Dishes)
	case "deals":
		var deals []Deal
		if err := json.Unmarshal(data, &deals); err != nil {
			return errors.New("invalid deals payload")
		}
		if len(deals) > MaxDeals {
			return fmt.Errorf("at most %d deals allowed", MaxDeals)
		}
		// An empty list is fine (deals are optional); a non-empty one
		// must carry the minimum.
		if len(deals) > 0 && len(deals) < MinDeals {
			return fmt.Errorf("at least %d deals required", MinDeals)
		}
		w.draft.Deals = deals
		return nil
	case "delivery_hours":
		return json.Unmarshal(data, &w.draft.DeliveryHours)
	case "fonts":
		return json.Unmarshal(data, &w.draft.Fonts)
	case "faqs":
		return replaceList(data, &w.draft.Faqs)
	case "social":
		return json.Unmarshal(data, &w.draft.Social)
	default:
		return fmt.Errorf("unknown section %q", section)
	}
}

func replaceList[T any](data json.RawMessage, dst *[]T) error {
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("invalid list payload")
	}
	*dst = list
	return nil
}

// --------------------------------------------------
// File attachment
// --------------------------------------------------

// AttachFile stores an uploaded blob on the draft. index selects the
// dish/deal/custom-section the image belongs to; photos append.
func (w *Wizard) AttachFile(field string, index int, f optimize.File) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch field {
	case "logo":
		w.draft.BusinessInfo.Logo = &f
	case "hero":
		w.draft.BusinessInfo.HeroImage = &f
	case "about":
		w.draft.About.AboutImage = &f
	case "menu":
		if !f.IsPDF() && f.DetectType() != "image/jpeg" {
			return errors.New("menu file must be a PDF or JPEG")
		}
		w.draft.MenuFile = &f
	case "photo":
		w.draft.Photos = append(w.draft.Photos, f)
	case "dish":
		if index < 0 || index >= len(w.draft.Dishes) {
			return errors.New("dish index out of range")
		}
		w.draft.Dishes[index].Image = &f
	case "deal":
		if index < 0 || index >= len(w.draft.Deals) {
			return errors.New("deal index out of range")
		}
		w.draft.Deals[index].Image = &f
	case "section":
		if index < 0 || index >= len(w.draft.About.CustomSections) {
			return errors.New("custom section index out of range")
		}
		w.draft.About.CustomSections[index].Image = &f
	default:
		return fmt.Errorf("unknown file field %q", field)
	}
	return nil
}
