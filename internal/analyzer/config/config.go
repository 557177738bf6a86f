package config

import (
	"time"

	"golang-filing-sentiment/pkg/config"
)

// Analyzer holds analyzer-service specific configuration.
type Analyzer struct {
	MaxConcurrentTasks     int           `mapstructure:"max_concurrent_tasks"`
	RedisStreamTaskTimeout time.Duration `mapstructure:"redis_stream_task_timeout"`
}

// Edgar holds the configuration for the SEC EDGAR client. The SEC requires a
// descriptive User-Agent with a contact address and caps request rates.
type Edgar struct {
	BaseURL             string `mapstructure:"base_url"`
	UserAgent           string `mapstructure:"user_agent"`
	MaxRequestPerSecond int    `mapstructure:"max_request_per_second"`
	CIKCacheTTL         string `mapstructure:"cik_cache_ttl"`
}

// Gemini holds the configuration for the Gemini classifier API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
	BatchSize           int    `mapstructure:"batch_size"`
}

// Analysis holds the text-analysis vocabulary and trend parameters.
type Analysis struct {
	LegalPhrases        []string `mapstructure:"legal_phrases"`
	Stopwords           []string `mapstructure:"stopwords"`
	MovingAverageWindow int      `mapstructure:"moving_average_window"`
	TopKeywords         int      `mapstructure:"top_keywords"`
	OutputDir           string   `mapstructure:"output_dir"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	Analyzer Analyzer        `mapstructure:"analyzer"`
	Edgar    Edgar           `mapstructure:"edgar"`
	Gemini   Gemini          `mapstructure:"gemini"`
	Analysis Analysis        `mapstructure:"analysis"`
	Telegram Telegram        `mapstructure:"telegram"`
}

// Load loads the analyzer configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
