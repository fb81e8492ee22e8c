package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsenplate/scraper/internal/config"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

var allowedKeys = map[string]bool{"title": true, "ingredients": true, "instructions": true, "error": true}

func decode(t *testing.T, r Result) map[string]json.RawMessage {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))

	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
	for k := range obj {
		assert.True(t, allowedKeys[k], "unexpected key %q", k)
	}
	return obj
}

func primaryRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Title:        "Pancakes",
		Ingredients:  recipe.ParseIngredients([]string{"1 cup flour", "2 eggs, beaten"}),
		Instructions: []string{"Mix.", "Fry."},
		Layer:        recipe.LayerPrimary,
	}
}

func fallbackRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Title:        "Miso Soup",
		Ingredients:  []recipe.Ingredient{recipe.NewStructuredIngredient("miso", "3", "Tbsp", "")},
		Instructions: []string{"Simmer."},
		Layer:        recipe.LayerFallback,
	}
}

func TestFailure(t *testing.T) {
	obj := decode(t, Failure("HTTP Error 404: Not Found"))

	assert.Len(t, obj, 1)
	assert.JSONEq(t, `"HTTP Error 404: Not Found"`, string(obj["error"]))
}

func TestLegacyPrimary(t *testing.T) {
	obj := decode(t, Success(primaryRecipe(), config.FormatLegacy))

	assert.NotContains(t, obj, "error")
	assert.JSONEq(t, `"Pancakes"`, string(obj["title"]))
	assert.JSONEq(t, `["1 cup flour", "2 eggs, beaten"]`, string(obj["ingredients"]))
	assert.JSONEq(t, `["Mix.", "Fry."]`, string(obj["instructions"]))
}

func TestLegacyFallback(t *testing.T) {
	obj := decode(t, Success(fallbackRecipe(), config.FormatLegacy))

	assert.JSONEq(t, `[["miso", "3", "Tbsp", ""]]`, string(obj["ingredients"]))
}

func TestStructured(t *testing.T) {
	obj := decode(t, Success(primaryRecipe(), config.FormatStructured))

	var ings []map[string]string
	require.NoError(t, json.Unmarshal(obj["ingredients"], &ings))
	require.Len(t, ings, 2)
	assert.Equal(t, "flour", ings[0]["name"])
	assert.Equal(t, "1", ings[0]["amount"])
	assert.Equal(t, "cup", ings[0]["unit"])
	assert.Equal(t, "beaten", ings[1]["notes"])
	assert.Equal(t, "2 eggs, beaten", ings[1]["raw"])
}

func TestEmptyRecipeRendersArrays(t *testing.T) {
	empty := &recipe.Recipe{Layer: recipe.LayerFallback}
	obj := decode(t, Success(empty, config.FormatLegacy))

	assert.JSONEq(t, `""`, string(obj["title"]))
	assert.JSONEq(t, `[]`, string(obj["ingredients"]))
	assert.JSONEq(t, `[]`, string(obj["instructions"]))
}

func TestWriteSingleLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Success(primaryRecipe(), config.FormatLegacy)))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestWriteKeepsHTMLCharacters(t *testing.T) {
	r := &recipe.Recipe{
		Title:        "Mac & Cheese <3",
		Ingredients:  []recipe.Ingredient{recipe.ParseIngredient("1 cup salt & pepper")},
		Instructions: []string{"Bake at > 180C."},
		Layer:        recipe.LayerPrimary,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Success(r, config.FormatLegacy)))
	assert.Equal(t, `{"title":"Mac & Cheese <3","ingredients":["1 cup salt & pepper"],"instructions":["Bake at > 180C."]}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, Failure("HTTP Error 404: <Not Found>")))
	assert.Equal(t, `{"error":"HTTP Error 404: <Not Found>"}`+"\n", buf.String())
}
