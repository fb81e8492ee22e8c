package recipe

import "strings"

// Layer names the extractor layer that produced a recipe.
type Layer string

const (
	LayerPrimary  Layer = "primary"
	LayerFallback Layer = "fallback"
)

// Recipe is the extracted content of one recipe page.
type Recipe struct {
	Title        string
	Ingredients  []Ingredient
	Instructions []string
	Layer        Layer
}

// Ingredient is a single ingredient line. Raw is the line as written on the
// page; the other fields are its parts, empty when unknown.
type Ingredient struct {
	Name   string
	Amount string
	Unit   string
	Notes  string
	Raw    string
}

// NewStructuredIngredient builds an ingredient from already separated parts,
// composing Raw as "amount unit name, notes".
func NewStructuredIngredient(name, amount, unit, notes string) Ingredient {
	parts := make([]string, 0, 3)
	for _, p := range []string{amount, unit, name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	raw := strings.Join(parts, " ")
	if notes != "" {
		if raw != "" {
			raw += ", "
		}
		raw += notes
	}

	return Ingredient{
		Name:   name,
		Amount: amount,
		Unit:   unit,
		Notes:  notes,
		Raw:    raw,
	}
}

// Tuple returns the ingredient as [name, amount, unit, notes].
func (i Ingredient) Tuple() [4]string {
	return [4]string{i.Name, i.Amount, i.Unit, i.Notes}
}

// String returns the ingredient line as written on the page.
func (i Ingredient) String() string {
	return i.Raw
}

// CleanInstructions trims each step and drops the ones left empty.
func CleanInstructions(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
