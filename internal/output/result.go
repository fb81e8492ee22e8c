// Package output renders extraction results as the JSON object printed by
// the command line tool and embedded in API responses.
package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/parsenplate/scraper/internal/config"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

// Result is either a recipe or an error message, never both.
type Result struct {
	Recipe *recipe.Recipe
	Error  string
	Format string
}

// Success wraps an extracted recipe.
func Success(r *recipe.Recipe, format string) Result {
	return Result{Recipe: r, Format: format}
}

// Failure wraps an error message.
func Failure(msg string) Result {
	return Result{Error: msg}
}

// OK reports whether the result carries a recipe.
func (r Result) OK() bool {
	return r.Recipe != nil && r.Error == ""
}

type recipeJSON struct {
	Title        string   `json:"title"`
	Ingredients  any      `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type errorJSON struct {
	Error string `json:"error"`
}

type ingredientJSON struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes"`
	Raw    string `json:"raw"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		return marshal(errorJSON{Error: r.Error})
	}
	return marshal(recipeJSON{
		Title:        r.Recipe.Title,
		Ingredients:  RenderIngredients(r.Recipe, r.Format),
		Instructions: instructions(r.Recipe),
	})
}

// marshal encodes v without escaping <, > and &, which json.Marshal always does.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// RenderIngredients returns the JSON shape of the recipe's ingredients.
// The legacy format keeps each layer's historical shape: strings from the
// primary layer, [name, amount, unit, notes] arrays from the fallback layer.
func RenderIngredients(r *recipe.Recipe, format string) any {
	if format == config.FormatStructured {
		out := make([]ingredientJSON, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			out = append(out, ingredientJSON{
				Name:   ing.Name,
				Amount: ing.Amount,
				Unit:   ing.Unit,
				Notes:  ing.Notes,
				Raw:    ing.Raw,
			})
		}
		return out
	}

	if r.Layer == recipe.LayerFallback {
		out := make([][4]string, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			out = append(out, ing.Tuple())
		}
		return out
	}

	out := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		out = append(out, ing.Raw)
	}
	return out
}

func instructions(r *recipe.Recipe) []string {
	if r.Instructions == nil {
		return []string{}
	}
	return r.Instructions
}

// Write prints r as a single JSON object followed by a newline.
func Write(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}
