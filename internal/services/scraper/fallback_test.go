package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

type stubExtractor struct {
	result *recipe.Recipe
	err    error
	calls  int
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (*recipe.Recipe, error) {
	s.calls++
	return s.result, s.err
}

func TestFallbackExtractor_PrimarySucceeds(t *testing.T) {
	primary := &stubExtractor{result: &recipe.Recipe{Title: "Primary", Layer: recipe.LayerPrimary}}
	secondary := &stubExtractor{result: &recipe.Recipe{Title: "Secondary"}}

	r, err := NewFallbackExtractor(primary, secondary).Extract(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "Primary", r.Title)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackExtractor_FallsBackOnAnyError(t *testing.T) {
	primaryErrors := []error{
		apperrors.NewUnsupportedSiteError("example.com"),
		apperrors.NewTimeoutError("request timed out", context.DeadlineExceeded),
		apperrors.NewNoRecipeError("no complete recipe"),
		errors.New("something unexpected"),
	}

	for _, primaryErr := range primaryErrors {
		t.Run(primaryErr.Error(), func(t *testing.T) {
			primary := &stubExtractor{err: primaryErr}
			secondary := &stubExtractor{result: &recipe.Recipe{Title: "From WPRM", Layer: recipe.LayerFallback}}

			r, err := NewFallbackExtractor(primary, secondary).Extract(context.Background(), "https://example.com")
			require.NoError(t, err)

			assert.Equal(t, "From WPRM", r.Title)
			assert.Equal(t, 1, primary.calls)
			assert.Equal(t, 1, secondary.calls)
		})
	}
}

func TestFallbackExtractor_BothFail(t *testing.T) {
	primary := &stubExtractor{err: apperrors.NewUnsupportedSiteError("example.com")}
	secondary := &stubExtractor{err: apperrors.NewFetchError("HTTP Error 403: Forbidden", nil)}

	r, err := NewFallbackExtractor(primary, secondary).Extract(context.Background(), "https://example.com")

	assert.Nil(t, r)
	assert.EqualError(t, err, "HTTP Error 403: Forbidden")
	assert.Equal(t, 1, secondary.calls)
}
