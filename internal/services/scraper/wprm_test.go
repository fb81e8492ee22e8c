package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsenplate/scraper/internal/services/fetch"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

const wprmPage = `<html><body>
<div class="wprm-recipe">
  <h2 class="wprm-recipe-name"> Miso Soup </h2>
  <div class="wprm-recipe-ingredients-container">
    <ul>
      <li class="wprm-recipe-ingredient">
        <span class="wprm-recipe-ingredient-amount">2</span>
        <span class="wprm-recipe-ingredient-unit">cups</span>
        <span class="wprm-recipe-ingredient-name">dashi</span>
        <span class="wprm-recipe-ingredient-notes">- homemade or instant</span>
      </li>
      <li class="wprm-recipe-ingredient">
        <span class="wprm-recipe-ingredient-amount">3-4</span>
        <span class="wprm-recipe-ingredient-unit">Tbsp</span>
        <span class="wprm-recipe-ingredient-name">miso</span>
      </li>
      <li class="wprm-recipe-ingredient">
        <span class="wprm-recipe-ingredient-name">green onions</span>
      </li>
    </ul>
  </div>
  <div class="wprm-recipe-instructions-container">
    <div class="wprm-recipe-instruction-text">Bring the dashi to a simmer.</div>
    <div class="wprm-recipe-instruction-text">   </div>
    <div class="wprm-recipe-instruction-text">
      Dissolve the miso and serve.
    </div>
  </div>
</div>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseWPRM(t *testing.T) {
	r := ParseWPRM(mustDoc(t, wprmPage))

	assert.Equal(t, "Miso Soup", r.Title)
	assert.Equal(t, recipe.LayerFallback, r.Layer)

	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, [4]string{"dashi", "2", "cups", "homemade or instant"}, r.Ingredients[0].Tuple())
	assert.Equal(t, [4]string{"miso", "34", "Tbsp", ""}, r.Ingredients[1].Tuple())
	assert.Equal(t, [4]string{"green onions", "", "", ""}, r.Ingredients[2].Tuple())

	for _, ing := range r.Ingredients {
		for _, part := range ing.Tuple() {
			assert.NotContains(t, part, "-")
		}
	}

	assert.Equal(t, []string{"Bring the dashi to a simmer.", "Dissolve the miso and serve."}, r.Instructions)
}

func TestParseWPRMIsStable(t *testing.T) {
	first := ParseWPRM(mustDoc(t, wprmPage))
	second := ParseWPRM(mustDoc(t, wprmPage))
	assert.Equal(t, len(first.Instructions), len(second.Instructions))
	assert.Equal(t, first, second)
}

func TestParseWPRMKeepsRepeatedLines(t *testing.T) {
	html := `<div class="wprm-recipe-ingredients-container"><ul>
<li class="wprm-recipe-ingredient"><span class="wprm-recipe-ingredient-amount">1</span><span class="wprm-recipe-ingredient-unit">tsp</span><span class="wprm-recipe-ingredient-name">salt</span></li>
<li class="wprm-recipe-ingredient"><span class="wprm-recipe-ingredient-amount">2</span><span class="wprm-recipe-ingredient-unit">cups</span><span class="wprm-recipe-ingredient-name">flour</span></li>
<li class="wprm-recipe-ingredient"><span class="wprm-recipe-ingredient-amount">1</span><span class="wprm-recipe-ingredient-unit">tsp</span><span class="wprm-recipe-ingredient-name">salt</span></li>
</ul></div>
<div class="wprm-recipe-instructions-container">
<div class="wprm-recipe-instruction-text">Mix.</div>
<div class="wprm-recipe-instruction-text">Rest 10 minutes.</div>
<div class="wprm-recipe-instruction-text">Knead.</div>
<div class="wprm-recipe-instruction-text">Rest 10 minutes.</div>
</div>`

	r := ParseWPRM(mustDoc(t, html))

	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, [4]string{"salt", "1", "tsp", ""}, r.Ingredients[0].Tuple())
	assert.Equal(t, [4]string{"salt", "1", "tsp", ""}, r.Ingredients[2].Tuple())
	assert.Equal(t, []string{"Mix.", "Rest 10 minutes.", "Knead.", "Rest 10 minutes."}, r.Instructions)
}

func TestParseWPRMWithoutMarkup(t *testing.T) {
	r := ParseWPRM(mustDoc(t, "<html><body><h1>Just a blog post</h1></body></html>"))

	assert.Equal(t, "", r.Title)
	assert.NotNil(t, r.Ingredients)
	assert.Empty(t, r.Ingredients)
	assert.NotNil(t, r.Instructions)
	assert.Empty(t, r.Instructions)
}

func TestParseWPRMIgnoresIngredientsOutsideContainer(t *testing.T) {
	html := `<ul><li class="wprm-recipe-ingredient"><span class="wprm-recipe-ingredient-name">stray</span></li></ul>`
	r := ParseWPRM(mustDoc(t, html))
	assert.Empty(t, r.Ingredients)
}

type stubPages struct {
	page *fetch.Page
	err  error
}

func (s *stubPages) Fetch(ctx context.Context, url string) (*fetch.Page, error) {
	return s.page, s.err
}

func TestWPRMExtractor(t *testing.T) {
	t.Run("parses fetched page", func(t *testing.T) {
		w := NewWPRMExtractor(&stubPages{page: &fetch.Page{HTML: wprmPage}})
		r, err := w.Extract(context.Background(), "https://example.com/miso")
		require.NoError(t, err)
		assert.Equal(t, "Miso Soup", r.Title)
	})

	t.Run("fetch error yields no result", func(t *testing.T) {
		w := NewWPRMExtractor(&stubPages{err: errors.New("HTTP Error 404: Not Found")})
		r, err := w.Extract(context.Background(), "https://example.com/missing")
		assert.Nil(t, r)
		assert.EqualError(t, err, "HTTP Error 404: Not Found")
	})
}
