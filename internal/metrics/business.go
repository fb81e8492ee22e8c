package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("parsenplate/scraper")

	// Extraction metrics
	ExtractionsTotal   metric.Int64Counter
	ExtractionDuration metric.Float64Histogram

	// Layer fallback metrics
	FallbackTotal metric.Int64Counter

	// Page fetch metrics
	PageFetchDuration metric.Float64Histogram
)

// Init registers the instruments against the global meter provider.
// Recorders are no-ops until Init succeeds.
func Init() error {
	var err error

	ExtractionsTotal, err = meter.Int64Counter(
		"recipe.extractions.total",
		metric.WithDescription("Total number of recipe extractions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExtractionDuration, err = meter.Float64Histogram(
		"recipe.extraction.duration",
		metric.WithDescription("Duration of a full recipe extraction"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	FallbackTotal, err = meter.Int64Counter(
		"recipe.fallback.total",
		metric.WithDescription("Total number of primary to fallback layer switches"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	PageFetchDuration, err = meter.Float64Histogram(
		"page.fetch.duration",
		metric.WithDescription("Duration of recipe page fetches"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordExtraction records the outcome of one pipeline run.
func RecordExtraction(ctx context.Context, layer, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("layer", layer),
		attribute.String("status", status),
	)
	if ExtractionsTotal != nil {
		ExtractionsTotal.Add(ctx, 1, attrs)
	}
	if ExtractionDuration != nil {
		ExtractionDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

// RecordFallback counts a switch to the fallback layer, labelled by why the primary failed.
func RecordFallback(ctx context.Context, reason string) {
	if FallbackTotal == nil {
		return
	}
	FallbackTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordFetch records how long a page fetch took.
func RecordFetch(ctx context.Context, layer string, statusCode int, elapsed time.Duration) {
	if PageFetchDuration == nil {
		return
	}
	PageFetchDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("layer", layer),
		attribute.Int("http.status_code", statusCode),
	))
}
