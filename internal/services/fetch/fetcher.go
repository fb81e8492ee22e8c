// Package fetch downloads recipe pages over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/httpclient"
	"github.com/parsenplate/scraper/internal/metrics"
)

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 10 << 20

// Page is a fetched HTML document.
type Page struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageFetcher performs a single GET per call with a browser User-Agent.
type PageFetcher struct {
	client *http.Client
	layer  string
}

// NewPageFetcher creates a fetcher whose requests are tagged with layer in traces and metrics.
func NewPageFetcher(layer, userAgent string, timeout time.Duration, opts ...httpclient.Option) *PageFetcher {
	return &PageFetcher{
		client: httpclient.NewInstrumentedClient(userAgent, timeout, opts...),
		layer:  layer,
	}
}

// Fetch downloads rawURL. Non-2xx responses and bodies that are not valid
// UTF-8 are errors; no partial page is returned.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	ctx = httpclient.WithLayer(ctx, f.layer)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.NewFetchError(fmt.Sprintf("invalid URL %q", rawURL), err)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		metrics.RecordFetch(ctx, f.layer, 0, time.Since(start))
		if IsTimeout(err) {
			return nil, apperrors.NewTimeoutError("request timed out", err)
		}
		return nil, apperrors.NewFetchError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordFetch(ctx, f.layer, resp.StatusCode, time.Since(start))
		return nil, apperrors.NewFetchError(StatusMessage(resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.RecordFetch(ctx, f.layer, resp.StatusCode, time.Since(start))
	if err != nil {
		if IsTimeout(err) {
			return nil, apperrors.NewTimeoutError("reading response timed out", err)
		}
		return nil, apperrors.NewFetchError("failed to read response body", err)
	}

	if !utf8.Valid(body) {
		return nil, apperrors.NewDecodeError("response body is not valid UTF-8", nil)
	}

	slog.DebugContext(ctx, "Fetched page",
		"layer", f.layer,
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return &Page{URL: rawURL, StatusCode: resp.StatusCode, HTML: string(body)}, nil
}

// StatusMessage formats a non-2xx status as "HTTP Error <code>: <reason>".
func StatusMessage(code int) string {
	return fmt.Sprintf("HTTP Error %d: %s", code, http.StatusText(code))
}

// IsTimeout reports whether err came from a deadline or client timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}
