package validation

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Confidence represents certainty in the validation result
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ContentValidationResult contains the outcome of validation
type ContentValidationResult struct {
	IsValid    bool       `json:"is_valid"`
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
	Missing    []string   `json:"missing"`
}

var recipeSchemaRe = regexp.MustCompile(`"@type"\s*:\s*(?:\[[^\]]*)?"Recipe"`)

var instructionKeywords = []string{"instruction", "step", "directions"}

// LooksLikeRecipe decides from page HTML alone whether it is a recipe page:
// a schema.org Recipe marker, or both ingredient and instruction wording.
func LooksLikeRecipe(html string) ContentValidationResult {
	if recipeSchemaRe.MatchString(html) {
		return ContentValidationResult{
			IsValid:    true,
			Confidence: ConfidenceHigh,
			Reason:     "Page declares schema.org Recipe structured data",
			Missing:    []string{},
		}
	}

	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = strings.ToLower(text)

	var missing []string
	if !strings.Contains(text, "ingredient") {
		missing = append(missing, "ingredients")
	}
	hasInstructions := false
	for _, kw := range instructionKeywords {
		if strings.Contains(text, kw) {
			hasInstructions = true
			break
		}
	}
	if !hasInstructions {
		missing = append(missing, "instructions")
	}

	if len(missing) == 0 {
		return ContentValidationResult{
			IsValid:    true,
			Confidence: ConfidenceMedium,
			Reason:     "Page mentions ingredients and instructions",
			Missing:    []string{},
		}
	}

	return ContentValidationResult{
		IsValid:    false,
		Confidence: ConfidenceLow,
		Reason:     "Page does not look like a recipe",
		Missing:    missing,
	}
}
