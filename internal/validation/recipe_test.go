package validation

import (
	"testing"

	"github.com/parsenplate/scraper/internal/services/recipe"
)

func TestHasRecipeContent(t *testing.T) {
	tests := []struct {
		name string
		r    *recipe.Recipe
		want bool
	}{
		{"nil", nil, false},
		{"empty", &recipe.Recipe{}, false},
		{"blank title", &recipe.Recipe{Title: "   "}, false},
		{"title only", &recipe.Recipe{Title: "Soup"}, true},
		{"ingredients only", &recipe.Recipe{Ingredients: []recipe.Ingredient{{Name: "salt"}}}, true},
		{"instructions only", &recipe.Recipe{Instructions: []string{"Stir."}}, true},
	}

	for _, tt := range tests {
		if got := HasRecipeContent(tt.r); got != tt.want {
			t.Errorf("%s: HasRecipeContent() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
