package scraper

import (
	"context"
	"log/slog"

	"github.com/parsenplate/scraper/internal/metrics"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

// FallbackExtractor tries Primary and, on any error, Secondary exactly once.
type FallbackExtractor struct {
	Primary   Extractor
	Secondary Extractor
}

// NewFallbackExtractor creates a new fallback extractor
func NewFallbackExtractor(primary, secondary Extractor) *FallbackExtractor {
	return &FallbackExtractor{
		Primary:   primary,
		Secondary: secondary,
	}
}

// Extract returns the primary result if there is one. When both layers fail
// the secondary's error is returned.
func (f *FallbackExtractor) Extract(ctx context.Context, url string) (*recipe.Recipe, error) {
	result, err := f.Primary.Extract(ctx, url)
	if err == nil {
		return result, nil
	}

	primaryErr := ClassifyError(err, string(recipe.LayerPrimary))
	slog.InfoContext(ctx, "Primary layer failed, attempting fallback",
		"reason", primaryErr.Reason,
		"error", err.Error(),
		"url", url)

	metrics.RecordFallback(ctx, primaryErr.Reason)

	result, fallbackErr := f.Secondary.Extract(ctx, url)
	if fallbackErr == nil {
		slog.InfoContext(ctx, "Fallback layer succeeded",
			"primary_reason", primaryErr.Reason,
			"url", url)
		return result, nil
	}

	secondaryErr := ClassifyError(fallbackErr, string(recipe.LayerFallback))
	slog.WarnContext(ctx, "Both extractor layers failed",
		"primary_reason", primaryErr.Reason,
		"primary_error", err.Error(),
		"fallback_reason", secondaryErr.Reason,
		"fallback_error", fallbackErr.Error(),
		"url", url)

	return nil, fallbackErr
}
