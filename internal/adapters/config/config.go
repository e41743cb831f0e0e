package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"pythia/pkg/errors"
)

type Config struct {
	App           AppConfig
	Exchange      ExchangeConfig
	Analysis      AnalysisConfig
	AI            AIConfig
	Output        OutputConfig
	Scheduler     SchedulerConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"pythia"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type ExchangeConfig struct {
	// Coinbase Exchange public market data API
	BaseURL string        `envconfig:"COINBASE_BASE_URL" default:"https://api.exchange.coinbase.com"`
	Timeout time.Duration `envconfig:"COINBASE_TIMEOUT" default:"30s"`
}

// AnalysisConfig carries the pipeline tunables. Defaults match the
// SOL-USD hourly setup; granularity must be one of the bucket sizes
// Coinbase accepts (60, 300, 900, 3600, 21600, 86400).
type AnalysisConfig struct {
	Symbol      string `envconfig:"ANALYSIS_SYMBOL" default:"SOL-USD"`
	Granularity int    `envconfig:"ANALYSIS_GRANULARITY" default:"3600"`
	Limit       int    `envconfig:"ANALYSIS_CANDLE_LIMIT" default:"200"`
	SampleSize  int    `envconfig:"ANALYSIS_SAMPLE_SIZE" default:"100"`
	Model       string `envconfig:"ANALYSIS_MODEL" default:"gpt-5"`
	Prompt      string `envconfig:"ANALYSIS_PROMPT" default:"Identify support and resistance levels for Solana based on the provided OHLCV data and technical indicators. Write a short summary in this format: Solana is currently trading at $X. The daily support level is $Y and the daily resistance level is $Z."`
}

type AIConfig struct {
	APIKey  string        `envconfig:"OPEN_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"120s"`
}

type OutputConfig struct {
	Path string `envconfig:"OUTPUT_PATH" default:"index.html"`
}

type SchedulerConfig struct {
	// Empty spec means a single run per invocation
	CronSpec string `envconfig:"RENDER_CRON"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	// envconfig's required tag accepts a variable that is set but
	// empty; an empty credential is still unusable.
	if cfg.AI.APIKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "OPEN_API_KEY is not set")
	}

	return &cfg, nil
}
