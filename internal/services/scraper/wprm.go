package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/services/fetch"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

// WP Recipe Maker markup.
const (
	wprmTitle       = ".wprm-recipe-name"
	wprmIngredients = ".wprm-recipe-ingredients-container li.wprm-recipe-ingredient"
	wprmAmount      = ".wprm-recipe-ingredient-amount"
	wprmUnit        = ".wprm-recipe-ingredient-unit"
	wprmName        = ".wprm-recipe-ingredient-name"
	wprmNotes       = ".wprm-recipe-ingredient-notes"
	wprmSteps       = ".wprm-recipe-instructions-container .wprm-recipe-instruction-text"
)

// PageSource fetches raw pages.
type PageSource interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// WPRMExtractor is the fallback layer for pages built with the WP Recipe
// Maker plugin.
type WPRMExtractor struct {
	pages PageSource
}

func NewWPRMExtractor(pages PageSource) *WPRMExtractor {
	return &WPRMExtractor{pages: pages}
}

// Extract never returns a partial recipe. Missing WPRM nodes are not an
// error; they yield an empty title or empty lists.
func (w *WPRMExtractor) Extract(ctx context.Context, url string) (*recipe.Recipe, error) {
	page, err := w.pages.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, apperrors.NewParseError("failed to parse page HTML", err)
	}

	return ParseWPRM(doc), nil
}

// ParseWPRM reads the WPRM recipe card from doc.
func ParseWPRM(doc *goquery.Document) *recipe.Recipe {
	r := &recipe.Recipe{
		Title:        norm(doc.Find(wprmTitle).First().Text()),
		Ingredients:  []recipe.Ingredient{},
		Instructions: []string{},
		Layer:        recipe.LayerFallback,
	}

	doc.Find(wprmIngredients).Each(func(_ int, item *goquery.Selection) {
		r.Ingredients = append(r.Ingredients, recipe.NewStructuredIngredient(
			wprmPart(item, wprmName),
			wprmPart(item, wprmAmount),
			wprmPart(item, wprmUnit),
			wprmPart(item, wprmNotes),
		))
	})

	doc.Find(wprmSteps).Each(func(_ int, step *goquery.Selection) {
		if t := norm(step.Text()); t != "" {
			r.Instructions = append(r.Instructions, t)
		}
	})

	return r
}

// wprmPart returns the trimmed text of the first matching sub-element with
// hyphens removed, or "" when the element is absent.
func wprmPart(item *goquery.Selection, selector string) string {
	sel := item.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(sel.Text(), "-", ""))
}
