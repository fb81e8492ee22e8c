package recipe

import (
	"regexp"
	"strings"
)

const unicodeFractions = "½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞"

var (
	quantity = `(?:\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?(?:\s*[` + unicodeFractions + `])?|[` + unicodeFractions + `])`

	amountRegex = regexp.MustCompile(`^(` + quantity + `(?:\s*(?:-|–|to)\s*` + quantity + `)?)(?:\s+|$)`)
	parenRegex  = regexp.MustCompile(`\(([^)]*)\)`)
	spaceRegex  = regexp.MustCompile(`\s+`)
)

var units = map[string]string{
	"c": "cup", "cup": "cup", "cups": "cups",
	"tbsp": "tbsp", "tbs": "tbsp", "tablespoon": "tablespoon", "tablespoons": "tablespoons",
	"tsp": "tsp", "teaspoon": "teaspoon", "teaspoons": "teaspoons",
	"g": "g", "gram": "gram", "grams": "grams", "kg": "kg",
	"ml": "ml", "l": "l", "liter": "liter", "liters": "liters", "litre": "litre", "litres": "litres",
	"oz": "oz", "ounce": "ounce", "ounces": "ounces",
	"lb": "lb", "lbs": "lbs", "pound": "pound", "pounds": "pounds",
	"qt": "qt", "quart": "quart", "quarts": "quarts",
	"pt": "pt", "pint": "pint", "pints": "pints", "gallon": "gallon", "gallons": "gallons",
	"pinch": "pinch", "dash": "dash", "handful": "handful",
	"clove": "clove", "cloves": "cloves",
	"can": "can", "cans": "cans", "package": "package", "packages": "packages", "pkg": "pkg",
	"slice": "slice", "slices": "slices", "stick": "stick", "sticks": "sticks",
	"bunch": "bunch", "sprig": "sprig", "sprigs": "sprigs",
	"piece": "piece", "pieces": "pieces", "inch": "inch",
}

// ParseIngredient splits a free-text ingredient line into amount, unit, name
// and notes. Notes are parenthesised text and anything after the first comma.
// Unparseable lines keep the whole text as the name.
func ParseIngredient(raw string) Ingredient {
	line := strings.TrimSpace(spaceRegex.ReplaceAllString(raw, " "))
	ing := Ingredient{Raw: line}
	if line == "" {
		return ing
	}

	rest := line
	if m := amountRegex.FindStringSubmatch(rest); m != nil {
		ing.Amount = strings.TrimSpace(m[1])
		rest = strings.TrimSpace(rest[len(m[0]):])

		word, after, _ := strings.Cut(rest, " ")
		key := strings.TrimSuffix(strings.ToLower(word), ".")
		if unit, known := units[key]; known && strings.TrimSpace(after) != "" {
			ing.Unit = unit
			rest = strings.TrimSpace(after)
		}
		rest = strings.TrimPrefix(rest, "of ")
	}

	var notes []string
	for _, m := range parenRegex.FindAllStringSubmatch(rest, -1) {
		if n := strings.TrimSpace(m[1]); n != "" {
			notes = append(notes, n)
		}
	}
	rest = parenRegex.ReplaceAllString(rest, "")

	if name, after, ok := strings.Cut(rest, ","); ok {
		rest = name
		if n := strings.TrimSpace(after); n != "" {
			notes = append(notes, n)
		}
	}

	ing.Name = strings.TrimSpace(spaceRegex.ReplaceAllString(rest, " "))
	ing.Notes = strings.Join(notes, ", ")
	return ing
}

// ParseIngredients parses each non-empty line.
func ParseIngredients(lines []string) []Ingredient {
	out := make([]Ingredient, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, ParseIngredient(l))
	}
	return out
}
