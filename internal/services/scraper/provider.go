package scraper

import (
	"context"

	"github.com/parsenplate/scraper/internal/services/recipe"
)

// Extractor turns a recipe page URL into a recipe.
type Extractor interface {
	Extract(ctx context.Context, url string) (*recipe.Recipe, error)
}
