package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Extraction modes.
const (
	ModePrimaryOnly = "primary_only"
	ModeFallback    = "fallback"
)

// Output formats.
const (
	FormatLegacy     = "legacy"
	FormatStructured = "structured"
)

// DefaultUserAgent is a desktop browser identity; some recipe sites answer
// script user agents with a blocking response.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string
	LogLevel       string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Scraper ScraperConfig
}

type ScraperConfig struct {
	Mode         string        `yaml:"mode"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	OutputFormat string        `yaml:"output_format"`

	// BlockPrivateNetworks refuses connections to non-public addresses.
	BlockPrivateNetworks bool `yaml:"block_private_networks"`
}

// Load builds the configuration from the optional YAML file named by
// CONFIG_FILE (default config.yaml), then the environment, then defaults.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit YAML path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	if err := cfg.LoadFromYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv overrides fields with any environment variables that are set.
func (c *Config) LoadFromEnv() error {
	setString(&c.Env, "ENV")
	setString(&c.ServiceName, "SERVICE_NAME")
	setString(&c.ServiceVersion, "SERVICE_VERSION")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.OtelExporterOTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&c.OtelExporterOTLPHeaders, "OTEL_EXPORTER_OTLP_HEADERS")
	setString(&c.SentryDSN, "SENTRY_DSN")
	setString(&c.Port, "PORT")
	setString(&c.Scraper.Mode, "SCRAPER_MODE")
	setString(&c.Scraper.UserAgent, "SCRAPER_USER_AGENT")
	setString(&c.Scraper.OutputFormat, "SCRAPER_OUTPUT_FORMAT")

	if v := os.Getenv("SCRAPER_BLOCK_PRIVATE_NETWORKS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SCRAPER_BLOCK_PRIVATE_NETWORKS %q: %w", v, err)
		}
		c.Scraper.BlockPrivateNetworks = b
	}

	if v := os.Getenv("SCRAPER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SCRAPER_TIMEOUT %q: %w", v, err)
		}
		c.Scraper.Timeout = d
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Scraper ScraperConfig `yaml:"scraper"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Scraper.Mode != "" {
		c.Scraper.Mode = yamlConfig.Scraper.Mode
	}
	if yamlConfig.Scraper.UserAgent != "" {
		c.Scraper.UserAgent = yamlConfig.Scraper.UserAgent
	}
	if yamlConfig.Scraper.Timeout > 0 {
		c.Scraper.Timeout = yamlConfig.Scraper.Timeout
	}
	if yamlConfig.Scraper.OutputFormat != "" {
		c.Scraper.OutputFormat = yamlConfig.Scraper.OutputFormat
	}
	if yamlConfig.Scraper.BlockPrivateNetworks {
		c.Scraper.BlockPrivateNetworks = true
	}

	return nil
}

func (c *Config) SetDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.ServiceName == "" {
		c.ServiceName = "parsenplate-scraper"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	c.Scraper.SetDefaults()
}

func (s *ScraperConfig) SetDefaults() {
	if s.Mode == "" {
		s.Mode = ModeFallback
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
	if s.OutputFormat == "" {
		s.OutputFormat = FormatLegacy
	}
}

func (c *Config) Validate() error {
	switch c.Scraper.Mode {
	case ModePrimaryOnly, ModeFallback:
	default:
		return fmt.Errorf("SCRAPER_MODE must be %q or %q, got %q", ModePrimaryOnly, ModeFallback, c.Scraper.Mode)
	}
	switch c.Scraper.OutputFormat {
	case FormatLegacy, FormatStructured:
	default:
		return fmt.Errorf("SCRAPER_OUTPUT_FORMAT must be %q or %q, got %q", FormatLegacy, FormatStructured, c.Scraper.OutputFormat)
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("SCRAPER_TIMEOUT must be positive")
	}
	return nil
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		headers[k] = strings.TrimSpace(v)
	}
	return headers
}
