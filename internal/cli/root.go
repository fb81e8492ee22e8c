// Package cli implements the scrape-recipe command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/parsenplate/scraper/internal/config"
	"github.com/parsenplate/scraper/internal/logger"
	"github.com/parsenplate/scraper/internal/metrics"
	"github.com/parsenplate/scraper/internal/output"
	"github.com/parsenplate/scraper/internal/pipeline"
	"github.com/parsenplate/scraper/internal/sentry"
	"github.com/parsenplate/scraper/internal/services/scraper"
	"github.com/parsenplate/scraper/internal/telemetry"
)

// MissingURLMessage is printed when no URL argument is given.
const MissingURLMessage = "URL argument is required"

// errUsage marks invocation errors that exit with status 1 after the error
// object has been printed.
var errUsage = errors.New("usage error")

type options struct {
	primaryOnly bool
	format      string
	timeout     time.Duration
	configFile  string
}

// NewRootCommand builds the command. stdout receives exactly one JSON object;
// logs go to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scrape-recipe <url>",
		Short: "Extract a recipe's title, ingredients and instructions as JSON",
		Long: `scrape-recipe fetches a recipe page and prints one JSON object:
{"title", "ingredients", "instructions"} on success or {"error"} on failure.

The generic extractor runs first. Unless --primary-only is set, pages it
cannot read are retried with the WP Recipe Maker extractor.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := output.Write(stdout, output.Failure(MissingURLMessage)); err != nil {
					return err
				}
				return errUsage
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				if werr := output.Write(stdout, output.Failure(err.Error())); werr != nil {
					return werr
				}
				return errUsage
			}

			return run(cmd.Context(), cfg, args[0], stdout, stderr)
		},
	}

	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if werr := output.Write(stdout, output.Failure(err.Error())); werr != nil {
			return werr
		}
		return errUsage
	})

	flags := cmd.Flags()
	flags.BoolVar(&opts.primaryOnly, "primary-only", false, "use only the generic extractor, without the WPRM fallback")
	flags.StringVar(&opts.format, "format", "", "ingredient output format: legacy or structured")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, e.g. 10s")
	flags.StringVar(&opts.configFile, "config", "", "YAML config file (default $CONFIG_FILE or config.yaml)")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if opts.primaryOnly {
		cfg.Scraper.Mode = config.ModePrimaryOnly
	}
	if flags.Changed("format") {
		cfg.Scraper.OutputFormat = opts.format
	}
	if flags.Changed("timeout") {
		cfg.Scraper.Timeout = opts.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, url string, stdout, stderr io.Writer) error {
	slog.SetDefault(logger.New(cfg.Env, cfg.LogLevel, stderr))

	shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	slog.Debug("Scraping recipe", "url", url, "mode", cfg.Scraper.Mode, "format", cfg.Scraper.OutputFormat)

	p := pipeline.New(scraper.NewExtractor(cfg.Scraper), cfg.Scraper.OutputFormat)
	return output.Write(stdout, p.Run(ctx, url))
}

// Execute runs the command with args and returns the process exit code:
// 1 for a missing URL or bad configuration, 0 once a result was printed.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}
