package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/httpclient"
	"github.com/parsenplate/scraper/internal/metrics"
	"github.com/parsenplate/scraper/internal/services/fetch"
	"github.com/parsenplate/scraper/internal/services/recipe"
)

// GenericExtractor is the primary layer: it reads schema.org JSON-LD, then
// per-site selectors, then schema.org microdata.
type GenericExtractor struct {
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

func NewGenericExtractor(userAgent string, timeout time.Duration, opts ...httpclient.Option) *GenericExtractor {
	return &GenericExtractor{
		userAgent: userAgent,
		timeout:   timeout,
		transport: httpclient.NewTransport(userAgent, opts...),
	}
}

func (g *GenericExtractor) Extract(ctx context.Context, rawURL string) (*recipe.Recipe, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, apperrors.NewFetchError(fmt.Sprintf("invalid URL %q", rawURL), err)
	}

	body, err := g.visit(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewParseError("failed to parse page HTML", err)
	}

	return extractFromDocument(doc, u.Hostname())
}

// visit downloads the page through a single-use collector.
func (g *GenericExtractor) visit(ctx context.Context, rawURL string) ([]byte, error) {
	ctx = httpclient.WithLayer(ctx, string(recipe.LayerPrimary))

	c := colly.NewCollector(
		colly.UserAgent(g.userAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(g.timeout)
	c.WithTransport(g.transport)

	var (
		body   []byte
		status int
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	start := time.Now()
	err := c.Visit(rawURL)
	metrics.RecordFetch(ctx, string(recipe.LayerPrimary), status, time.Since(start))

	// colly accepts only 200-202; any other status arrives here as an error.
	if err != nil {
		switch {
		case status != 0 && (status < 200 || status > 202):
			return nil, apperrors.NewFetchError(fetch.StatusMessage(status), nil)
		case fetch.IsTimeout(err):
			return nil, apperrors.NewTimeoutError("request timed out", err)
		default:
			return nil, apperrors.NewFetchError("request failed", err)
		}
	}
	if body == nil {
		return nil, apperrors.NewFetchError("empty response", nil)
	}

	slog.DebugContext(ctx, "Fetched page", "layer", recipe.LayerPrimary, "url", rawURL, "status", status, "bytes", len(body))
	return body, nil
}

// extractFromDocument requires a title, at least one ingredient and at least
// one instruction from one source; partial data is an error.
func extractFromDocument(doc *goquery.Document, host string) (*recipe.Recipe, error) {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")

	ld, hasLD := parseJSONLD(doc)
	if hasLD && complete(ld) {
		return toRecipe(ld), nil
	}

	adapter := adapterFor(host)
	if adapter != nil {
		if r := adapter.extract(doc); complete(r) {
			return toRecipe(r), nil
		}
	}

	foundMicrodata := hasMicrodata(doc)
	if foundMicrodata {
		if r := microdata.extract(doc); complete(r) {
			return toRecipe(r), nil
		}
	}

	if adapter == nil && !hasLD && !foundMicrodata {
		return nil, apperrors.NewUnsupportedSiteError(host)
	}
	return nil, apperrors.NewNoRecipeError(fmt.Sprintf("no complete recipe found on %s", host))
}

func complete(r *ldRecipe) bool {
	return r != nil && r.Title != "" && len(r.Ingredients) > 0 && len(r.Instructions) > 0
}

func toRecipe(r *ldRecipe) *recipe.Recipe {
	return &recipe.Recipe{
		Title:        r.Title,
		Ingredients:  recipe.ParseIngredients(r.Ingredients),
		Instructions: recipe.CleanInstructions(r.Instructions),
		Layer:        recipe.LayerPrimary,
	}
}
