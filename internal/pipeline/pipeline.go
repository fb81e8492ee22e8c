// Package pipeline runs one recipe extraction end to end and turns the
// outcome into an output.Result.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/logger"
	"github.com/parsenplate/scraper/internal/metrics"
	"github.com/parsenplate/scraper/internal/output"
	"github.com/parsenplate/scraper/internal/sentry"
	"github.com/parsenplate/scraper/internal/services/recipe"
	"github.com/parsenplate/scraper/internal/services/scraper"
	"github.com/parsenplate/scraper/internal/telemetry"
)

type Pipeline struct {
	extractor scraper.Extractor
	format    string
	tracer    trace.Tracer
}

func New(extractor scraper.Extractor, format string) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		format:    format,
		tracer:    telemetry.Tracer("github.com/parsenplate/scraper/pipeline"),
	}
}

// Format returns the ingredient output format results are rendered with.
func (p *Pipeline) Format() string {
	return p.format
}

// Extract runs the extractor inside a span and records metrics, logs and
// error reports for the outcome.
func (p *Pipeline) Extract(ctx context.Context, url string) (*recipe.Recipe, error) {
	ctx, span := p.tracer.Start(ctx, "recipe.extract", trace.WithAttributes(
		attribute.String("recipe.url", url),
	))
	defer span.End()

	start := time.Now()
	r, err := p.extractor.Extract(ctx, url)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		code := apperrors.CodeUnknown
		if appErr, ok := apperrors.As(err); ok {
			code = appErr.Code()
		}
		reason := scraper.ClassifyError(err, "").Reason

		metrics.RecordExtraction(ctx, "none", "error", elapsed)
		sentry.CaptureError(ctx, err, url, code)
		slog.WarnContext(ctx, "Recipe extraction failed",
			"url", url,
			"reason", reason,
			"code", code,
			"error", err.Error(),
			"duration_ms", elapsed.Milliseconds(),
			logger.WithTraceContext(ctx),
		)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("recipe.layer", string(r.Layer)),
		attribute.Int("recipe.ingredients", len(r.Ingredients)),
		attribute.Int("recipe.instructions", len(r.Instructions)),
	)
	metrics.RecordExtraction(ctx, string(r.Layer), "success", elapsed)
	slog.InfoContext(ctx, "Recipe extracted",
		"url", url,
		"layer", r.Layer,
		"title", r.Title,
		"ingredients", len(r.Ingredients),
		"instructions", len(r.Instructions),
		"duration_ms", elapsed.Milliseconds(),
		logger.WithTraceContext(ctx),
	)
	return r, nil
}

// Run never fails: extraction errors become an error result carrying the
// error's message.
func (p *Pipeline) Run(ctx context.Context, url string) output.Result {
	r, err := p.Extract(ctx, url)
	if err != nil {
		return output.Failure(err.Error())
	}
	return output.Success(r, p.format)
}
