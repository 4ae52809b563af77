package submission

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("submission not found")
	ErrVersionConflict = errors.New("submission was modified by someone else")
)

// DishDiff and DealDiff are declarative child reconciliations: rows
// to insert (no id yet), rows to update in place, ids to delete.
type DishDiff struct {
	Insert    []Dish
	Update    []Dish
	DeleteIDs []string
}

type DealDiff struct {
	Insert    []Deal
	Update    []Deal
	DeleteIDs []string
}

// Repository is the relational-store contract. The persister and the
// editor depend ONLY on this interface.
type Repository interface {
	// InsertRecord writes parent + all children in one transaction.
	InsertRecord(ctx context.Context, rec *Record) error

	List(ctx context.Context) ([]*Submission, error)

	// LoadRecord fetches parent + children ordered by display_order asc.
	LoadRecord(ctx context.Context, id string) (*Record, error)

	// SaveEdits writes back scalar parent fields (guarded by the
	// version counter) and applies both child diffs in one transaction.
	SaveEdits(ctx context.Context, sub *Submission, dishes DishDiff, deals DealDiff) error

	MarkLive(ctx context.Context, id string) error
}
