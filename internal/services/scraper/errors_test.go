package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/parsenplate/scraper/internal/errors"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", apperrors.NewTimeoutError("request timed out", nil), ReasonTimeout},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ReasonTimeout},
		{"http status", apperrors.NewFetchError("HTTP Error 403: Forbidden", nil), ReasonHTTPStatus},
		{"network", apperrors.NewFetchError("request failed", errors.New("dial tcp: connection refused")), ReasonNetwork},
		{"decode", apperrors.NewDecodeError("bad bytes", nil), ReasonDecode},
		{"no recipe", apperrors.NewNoRecipeError("nothing"), ReasonNoRecipe},
		{"parse", apperrors.NewParseError("broken html", nil), ReasonNoRecipe},
		{"unsupported", apperrors.NewUnsupportedSiteError("example.com"), ReasonUnsupported},
		{"plain http message", errors.New("HTTP Error 500: Internal Server Error"), ReasonHTTPStatus},
		{"plain dns", errors.New("lookup foo: no such host"), ReasonNetwork},
		{"unknown", errors.New("boom"), ReasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err, "primary")
			if got.Reason != tt.want {
				t.Errorf("ClassifyError(%v).Reason = %q, want %q", tt.err, got.Reason, tt.want)
			}
			if got.Layer != "primary" {
				t.Errorf("expected layer primary, got %q", got.Layer)
			}
			if got.Error() != tt.err.Error() {
				t.Errorf("expected message %q, got %q", tt.err.Error(), got.Error())
			}
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	if ClassifyError(nil, "primary") != nil {
		t.Error("expected nil for nil error")
	}
}
