package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordersBeforeInit(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordExtraction(ctx, "primary", "success", time.Second)
		RecordFallback(ctx, "timeout")
		RecordFetch(ctx, "fallback", 200, time.Millisecond)
	})
}

func TestInit(t *testing.T) {
	require.NoError(t, Init())

	assert.NotNil(t, ExtractionsTotal)
	assert.NotNil(t, ExtractionDuration)
	assert.NotNil(t, FallbackTotal)
	assert.NotNil(t, PageFetchDuration)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordExtraction(ctx, "fallback", "error", 2*time.Second)
		RecordFallback(ctx, "no_recipe")
		RecordFetch(ctx, "primary", 403, 300*time.Millisecond)
	})
}
