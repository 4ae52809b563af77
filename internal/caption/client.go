package caption

import "context"

// Result is a suggested name/description/category for an image.
// Purely advisory: callers surface failures and carry on with
// manual entry.
type Result struct {
	DishName          string `json:"dishName"`
	Description       string `json:"description"`
	SuggestedCategory string `json:"suggestedCategory"`
}

type Client interface {
	Caption(ctx context.Context, imageBase64, category, language string) (*Result, error)
}
