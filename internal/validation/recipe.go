package validation

import (
	"strings"

	"github.com/parsenplate/scraper/internal/services/recipe"
)

// HasRecipeContent reports whether r has at least one of a title, an
// ingredient or an instruction.
func HasRecipeContent(r *recipe.Recipe) bool {
	if r == nil {
		return false
	}
	return strings.TrimSpace(r.Title) != "" || len(r.Ingredients) > 0 || len(r.Instructions) > 0
}
