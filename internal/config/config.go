// Package config loads the application configuration from defaults, an
// optional YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable holding the YAML config path.
const FileEnv = "STOCK_CHART_CONFIG"

// Config holds all application configuration.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	DataSource struct {
		BaseURL    string        `yaml:"base_url"`
		Symbol     string        `yaml:"symbol"`
		Exchange   string        `yaml:"exchange"`
		Timeout    time.Duration `yaml:"timeout"`
		RatePerSec float64       `yaml:"rate_per_sec"`
		Burst      int           `yaml:"burst"`
	} `yaml:"data_source"`

	Chart struct {
		LabelTZ string `yaml:"label_tz"`
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
	} `yaml:"chart"`

	HTTP struct {
		CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	} `yaml:"http"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{HTTPAddr: ":8080"}
	cfg.DataSource.BaseURL = "https://chart.stockscan.io"
	cfg.DataSource.Symbol = "TSLA"
	cfg.DataSource.Exchange = "NASDAQ"
	cfg.DataSource.RatePerSec = 2
	cfg.DataSource.Burst = 4
	cfg.Chart.LabelTZ = "UTC"
	cfg.Chart.Width = 1024
	cfg.Chart.Height = 480
	cfg.Log.Level = "info"
	return cfg
}

// LoadFromEnv loads an optional .env file and then calls Load with the path
// named by STOCK_CHART_CONFIG.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	return Load(os.Getenv(FileEnv))
}

// Load reads config from a YAML file, then applies environment variable
// overrides. An empty path skips the file; a missing file is an error only
// when the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString("HTTP_ADDR", &c.HTTPAddr)
	setString("STOCKSCAN_BASE_URL", &c.DataSource.BaseURL)
	setString("CHART_SYMBOL", &c.DataSource.Symbol)
	setString("CHART_EXCHANGE", &c.DataSource.Exchange)
	setString("CHART_LABEL_TZ", &c.Chart.LabelTZ)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FILE", &c.Log.File)

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		c.HTTP.CORSAllowOrigins = splitList(v)
	}

	var errs []error
	if v := os.Getenv("STOCKSCAN_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("STOCKSCAN_TIMEOUT: %w", err))
		}
		c.DataSource.Timeout = d
	}
	if v := os.Getenv("STOCKSCAN_RATE_PER_SEC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("STOCKSCAN_RATE_PER_SEC: %w", err))
		}
		c.DataSource.RatePerSec = f
	}
	errs = append(errs,
		setInt("STOCKSCAN_BURST", &c.DataSource.Burst),
		setInt("CHART_WIDTH", &c.Chart.Width),
		setInt("CHART_HEIGHT", &c.Chart.Height),
	)
	return errors.Join(errs...)
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if strings.TrimSpace(c.DataSource.Symbol) == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if strings.TrimSpace(c.DataSource.Exchange) == "" {
		return fmt.Errorf("data_source.exchange is required")
	}
	if c.DataSource.RatePerSec < 0 {
		return fmt.Errorf("data_source.rate_per_sec must not be negative")
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart.width and chart.height must be positive")
	}
	for _, o := range c.HTTP.CORSAllowOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("http.cors_allow_origins: %q must be \"*\" or start with http:// or https://", o)
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("chart.label_tz: %w", err)
	}
	return nil
}

// Location resolves the timezone in which chart labels are formatted.
func (c *Config) Location() (*time.Location, error) {
	if c.Chart.LabelTZ == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Chart.LabelTZ)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// parseDuration accepts Go durations ("10s") and bare integers as seconds.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
