package categorizer

import (
	"context"
)

// Input is what a strategy categorizes.
type Input struct {
	Description string
	IsCredit    bool
}

// Strategy is one step of category prediction (learned overrides, keyword
// table, credit default). Strategies are consulted in order and the first
// one that finds a category wins.
type Strategy interface {
	// Categorize returns the category and whether this strategy found one.
	// Errors are logged by the Categorizer and treated as "not found".
	Categorize(ctx context.Context, in Input) (category string, found bool, err error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
