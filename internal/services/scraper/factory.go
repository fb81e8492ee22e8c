package scraper

import (
	"github.com/parsenplate/scraper/internal/config"
	"github.com/parsenplate/scraper/internal/httpclient"
	"github.com/parsenplate/scraper/internal/services/fetch"
	"github.com/parsenplate/scraper/internal/services/recipe"
	"github.com/parsenplate/scraper/internal/validation"
)

// NewExtractor builds the extractor for the configured mode. Both modes
// share the same primary layer.
func NewExtractor(cfg config.ScraperConfig) Extractor {
	cfg.SetDefaults()

	var opts []httpclient.Option
	if cfg.BlockPrivateNetworks {
		opts = append(opts, httpclient.WithDialControl(validation.DialControl))
	}

	primary := NewGenericExtractor(cfg.UserAgent, cfg.Timeout, opts...)

	switch cfg.Mode {
	case config.ModePrimaryOnly:
		return primary
	default:
		pages := fetch.NewPageFetcher(string(recipe.LayerFallback), cfg.UserAgent, cfg.Timeout, opts...)
		return NewFallbackExtractor(primary, NewWPRMExtractor(pages))
	}
}
