package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ldRecipe is the subset of a schema.org Recipe the extractor reads.
type ldRecipe struct {
	Title        string
	Ingredients  []string
	Instructions []string
}

// parseJSONLD returns the first schema.org Recipe found in the page's
// JSON-LD blocks. Malformed blocks are skipped.
func parseJSONLD(doc *goquery.Document) (*ldRecipe, bool) {
	var found *ldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		node := findRecipeNode(data)
		if node == nil {
			return true
		}
		found = &ldRecipe{
			Title:        plainText(stringValue(node["name"])),
			Ingredients:  ingredientLines(node),
			Instructions: instructionSteps(node["recipeInstructions"]),
		}
		return false
	})
	return found, found != nil
}

func findRecipeNode(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if isType(t["@type"], "Recipe") {
			return t
		}
		for _, key := range []string{"@graph", "mainEntity"} {
			if nested, ok := t[key]; ok {
				if node := findRecipeNode(nested); node != nil {
					return node
				}
			}
		}
	}
	return nil
}

func isType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return stringValue(t[0])
		}
	}
	return ""
}

func ingredientLines(node map[string]any) []string {
	raw, ok := node["recipeIngredient"]
	if !ok {
		raw = node["ingredients"]
	}

	var lines []string
	switch t := raw.(type) {
	case string:
		lines = append(lines, plainText(t))
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				lines = append(lines, plainText(s))
			}
		}
	}
	return nonEmpty(lines)
}

// instructionSteps flattens plain strings, HowToStep objects and
// HowToSection.itemListElement lists into step texts.
func instructionSteps(v any) []string {
	var steps []string
	switch t := v.(type) {
	case string:
		for _, line := range strings.Split(t, "\n") {
			steps = append(steps, plainText(line))
		}
	case []any:
		for _, item := range t {
			steps = append(steps, instructionSteps(item)...)
		}
	case map[string]any:
		if isType(t["@type"], "HowToSection") || t["itemListElement"] != nil {
			steps = append(steps, instructionSteps(t["itemListElement"])...)
			break
		}
		text := stringValue(t["text"])
		if text == "" {
			text = stringValue(t["name"])
		}
		steps = append(steps, plainText(text))
	}

	out := steps[:0]
	for _, s := range steps {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
