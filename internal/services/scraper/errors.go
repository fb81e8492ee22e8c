package scraper

import (
	"strings"

	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/services/fetch"
)

// Failure reasons used as metric and log labels.
const (
	ReasonTimeout     = "timeout"
	ReasonNetwork     = "network"
	ReasonHTTPStatus  = "http_status"
	ReasonDecode      = "decode"
	ReasonNoRecipe    = "no_recipe"
	ReasonUnsupported = "unsupported"
	ReasonUnknown     = "unknown"
)

// ExtractionError is a classified extractor failure.
type ExtractionError struct {
	Reason  string
	Message string
	Layer   string
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return e.Message
}

// ClassifyError maps an extractor error to a failure reason.
func ClassifyError(err error, layer string) *ExtractionError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classified := func(reason string) *ExtractionError {
		return &ExtractionError{Reason: reason, Message: msg, Layer: layer}
	}

	if appErr, ok := apperrors.As(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeTimeout:
			return classified(ReasonTimeout)
		case apperrors.ErrorTypeDecode:
			return classified(ReasonDecode)
		case apperrors.ErrorTypeNoRecipe, apperrors.ErrorTypeParse:
			return classified(ReasonNoRecipe)
		case apperrors.ErrorTypeUnsupported:
			return classified(ReasonUnsupported)
		case apperrors.ErrorTypeFetch:
			if strings.HasPrefix(appErr.Message, "HTTP Error ") {
				return classified(ReasonHTTPStatus)
			}
			return classified(ReasonNetwork)
		}
	}

	if fetch.IsTimeout(err) {
		return classified(ReasonTimeout)
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "http error"):
		return classified(ReasonHTTPStatus)
	case strings.Contains(lower, "connection refused"),
		strings.Contains(lower, "no such host"),
		strings.Contains(lower, "connection reset"):
		return classified(ReasonNetwork)
	case strings.Contains(lower, "not supported"):
		return classified(ReasonUnsupported)
	}

	return classified(ReasonUnknown)
}
