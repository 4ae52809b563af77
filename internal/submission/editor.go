package submission

import (
	"context"
	"strings"
)

// Editor is the admin-side read-modify-write cycle over a persisted
// record. Photos are read-only here; dishes and deals reconcile by
// declarative diff instead of delete-then-reinsert so row ids stay
// stable and a retried save is idempotent.
type Editor struct {
	repo Repository
}

func NewEditor(repo Repository) *Editor {
	return &Editor{repo: repo}
}

func (e *Editor) List(ctx context.Context) ([]*Submission, error) {
	return e.repo.List(ctx)
}

func (e *Editor) Load(ctx context.Context, id string) (*Record, error) {
	return e.repo.LoadRecord(ctx, id)
}

// Save writes back all scalar parent fields and reconciles dishes
// and deals. Rows with blank required text are dropped and display
// order is renumbered sequentially from 1.
func (e *Editor) Save(ctx context.Context, rec *Record) error {
	existing, err := e.repo.LoadRecord(ctx, rec.ID)
	if err != nil {
		return err
	}

	dishes := DiffDishes(existing.Dishes, rec.Dishes)
	deals := DiffDeals(existing.Deals, rec.Deals)

	return e.repo.SaveEdits(ctx, &rec.Submission, dishes, deals)
}

func (e *Editor) MarkLive(ctx context.Context, id string) error {
	return e.repo.MarkLive(ctx, id)
}

// --------------------------------------------------
// Child diffing
// --------------------------------------------------

// DiffDishes filters blank rows out of the edited list, renumbers
// display_order from 1, and splits the result into inserts (no id),
// updates (known id) and deletes (ids that vanished).
func DiffDishes(existing, edited []Dish) DishDiff {
	var diff DishDiff

	kept := make(map[string]bool)
	order := 0
	for _, d := range edited {
		if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Description) == "" {
			continue
		}
		order++
		d.DisplayOrder = order

		if d.ID == "" {
			diff.Insert = append(diff.Insert, d)
			continue
		}
		kept[d.ID] = true
		diff.Update = append(diff.Update, d)
	}

	for _, d := range existing {
		if !kept[d.ID] {
			diff.DeleteIDs = append(diff.DeleteIDs, d.ID)
		}
	}
	return diff
}

func DiffDeals(existing, edited []Deal) DealDiff {
	var diff DealDiff

	kept := make(map[string]bool)
	order := 0
	for _, d := range edited {
		if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Description) == "" {
			continue
		}
		order++
		d.DisplayOrder = order

		if d.ID == "" {
			diff.Insert = append(diff.Insert, d)
			continue
		}
		kept[d.ID] = true
		diff.Update = append(diff.Update, d)
	}

	for _, d := range existing {
		if !kept[d.ID] {
			diff.DeleteIDs = append(diff.DeleteIDs, d.ID)
		}
	}
	return diff
}
