package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headerTexts = map[string]bool{
	"ingredients":  true,
	"directions":   true,
	"instructions": true,
	"steps":        true,
	"method":       true,
}

// siteAdapter knows where one site keeps its recipe content.
type siteAdapter struct {
	name         string
	domains      []string
	title        []string
	ingredients  []string
	instructions []string
}

var siteAdapters = []siteAdapter{
	{
		name:         "allrecipes",
		domains:      []string{"allrecipes.com"},
		title:        []string{`h1[data-testid="recipe-title"]`, "h1.article-heading", "h1"},
		ingredients:  []string{`[data-testid="ingredient-item"]`, ".mm-recipes-structured-ingredients__list-item", ".ingredients-item-name"},
		instructions: []string{`[data-testid="instruction-step"] p`, ".mm-recipes-steps__content li p", ".instructions-section-item p"},
	},
	{
		name:         "bbcgoodfood",
		domains:      []string{"bbcgoodfood.com"},
		title:        []string{".recipe-header__title", ".post-header__title", "h1"},
		ingredients:  []string{".recipe__ingredients li", ".recipe-ingredients__list li"},
		instructions: []string{".recipe__method-steps li", ".recipe-method__list li", ".method-list li"},
	},
	{
		name:         "foodnetwork",
		domains:      []string{"foodnetwork.com", "foodnetwork.co.uk"},
		title:        []string{".o-AssetTitle__a-HeadlineText", ".recipe-title", "h1"},
		ingredients:  []string{".o-Ingredients__a-Ingredient--CheckboxLabel", ".o-Ingredients__a-Ingredient", ".recipe-ingredients li"},
		instructions: []string{".o-Method__m-Step", ".recipe-instructions li"},
	},
	{
		name:         "seriouseats",
		domains:      []string{"seriouseats.com"},
		title:        []string{".heading__title", "h1.entry-title", "h1"},
		ingredients:  []string{".structured-ingredients__list-item", ".ingredient-list li", ".recipe-ingredients li"},
		instructions: []string{"#structured-project__steps_1-0 li p", ".structured-project__steps li p", ".recipe-procedures li", ".recipe-instructions li"},
	},
	{
		name:         "justonecookbook",
		domains:      []string{"justonecookbook.com"},
		title:        []string{"h1.entry-title", ".entry-title", ".post-title"},
		ingredients:  []string{".wprm-recipe-ingredients-container li.wprm-recipe-ingredient", ".recipe-ingredients li", ".ingredients li"},
		instructions: []string{".wprm-recipe-instructions-container .wprm-recipe-instruction-text", ".recipe-instructions li", ".instructions li"},
	},
	{
		name:         "simplyrecipes",
		domains:      []string{"simplyrecipes.com"},
		title:        []string{".heading__title", "h1"},
		ingredients:  []string{".structured-ingredients__list-item", ".ingredient-list li"},
		instructions: []string{"#structured-project__steps_1-0 li p", ".structured-project__steps li p", ".recipe-instructions li"},
	},
}

// adapterFor returns the adapter registered for host or one of its parent domains.
func adapterFor(host string) *siteAdapter {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for i := range siteAdapters {
		for _, d := range siteAdapters[i].domains {
			if host == d || strings.HasSuffix(host, "."+d) {
				return &siteAdapters[i]
			}
		}
	}
	return nil
}

func (a *siteAdapter) extract(doc *goquery.Document) *ldRecipe {
	return &ldRecipe{
		Title:        firstText(doc, a.title),
		Ingredients:  listText(doc, a.ingredients, headerTexts),
		Instructions: listText(doc, a.instructions, headerTexts),
	}
}

// Microdata uses itemprop attributes inside a schema.org Recipe scope.
var microdata = siteAdapter{
	name:         "microdata",
	title:        []string{`[itemtype*="schema.org/Recipe"] [itemprop="name"]`},
	ingredients:  []string{`[itemprop="recipeIngredient"]`, `[itemprop="ingredients"]`},
	instructions: []string{`[itemprop="recipeInstructions"] li`, `[itemprop="recipeInstructions"] p`, `[itemprop="recipeInstructions"]`},
}

func hasMicrodata(doc *goquery.Document) bool {
	return doc.Find(`[itemtype*="schema.org/Recipe"]`).Length() > 0
}
