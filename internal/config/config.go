package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the candidate/profile persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Dir         string `yaml:"dir" mapstructure:"dir"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for the enrichment engine.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// SourcesConfig holds per-source endpoints and timeouts. Base URLs are
// overridable so tests can point adapters at local servers.
type SourcesConfig struct {
	DuckDuckGoBaseURL     string `yaml:"duckduckgo_base_url" mapstructure:"duckduckgo_base_url"`
	HackerNewsBaseURL     string `yaml:"hackernews_base_url" mapstructure:"hackernews_base_url"`
	OpenCorporatesBaseURL string `yaml:"opencorporates_base_url" mapstructure:"opencorporates_base_url"`
	GitHubBaseURL         string `yaml:"github_base_url" mapstructure:"github_base_url"`
	NewsBaseURL           string `yaml:"news_base_url" mapstructure:"news_base_url"`
	SearchTimeoutSecs     int    `yaml:"search_timeout_secs" mapstructure:"search_timeout_secs"`
	RegistryTimeoutSecs   int    `yaml:"registry_timeout_secs" mapstructure:"registry_timeout_secs"`
	WebsiteTimeoutSecs    int    `yaml:"website_timeout_secs" mapstructure:"website_timeout_secs"`
}

// DiscoveryConfig configures the company discovery phase.
type DiscoveryConfig struct {
	SeedFile       string  `yaml:"seed_file" mapstructure:"seed_file"`
	MaxPerQuery    int     `yaml:"max_per_query" mapstructure:"max_per_query"`
	MinDelaySecs   float64 `yaml:"min_delay_secs" mapstructure:"min_delay_secs"`
	MaxDelaySecs   float64 `yaml:"max_delay_secs" mapstructure:"max_delay_secs"`
	MinRepoStars   int     `yaml:"min_repo_stars" mapstructure:"min_repo_stars"`
	SkipRemoteAPIs bool    `yaml:"skip_remote_apis" mapstructure:"skip_remote_apis"`
}

// ResearchConfig configures the per-company research phase.
type ResearchConfig struct {
	Workers      int     `yaml:"workers" mapstructure:"workers"`
	MinDelaySecs float64 `yaml:"min_delay_secs" mapstructure:"min_delay_secs"`
	MaxDelaySecs float64 `yaml:"max_delay_secs" mapstructure:"max_delay_secs"`
	MaxRetries   int     `yaml:"max_retries" mapstructure:"max_retries"`
}

// ExportConfig configures the benchmark export phase.
type ExportConfig struct {
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
}

// ServerConfig configures the read-only profiles API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("COMPETITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without file defaults still need registering so AutomaticEnv
	// values survive Unmarshal.
	v.SetDefault("store.driver", "json")
	v.SetDefault("store.dir", "data")
	v.SetDefault("store.database_url", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 2000)
	v.SetDefault("anthropic.temperature", 0.1)
	v.SetDefault("sources.duckduckgo_base_url", "https://api.duckduckgo.com")
	v.SetDefault("sources.hackernews_base_url", "https://hn.algolia.com/api/v1")
	v.SetDefault("sources.opencorporates_base_url", "https://api.opencorporates.com/v0.4")
	v.SetDefault("sources.github_base_url", "https://api.github.com")
	v.SetDefault("sources.news_base_url", "https://news.google.com/rss")
	v.SetDefault("sources.search_timeout_secs", 10)
	v.SetDefault("sources.registry_timeout_secs", 15)
	v.SetDefault("sources.website_timeout_secs", 20)
	v.SetDefault("discovery.seed_file", "seeds.yaml")
	v.SetDefault("discovery.max_per_query", 20)
	v.SetDefault("discovery.min_delay_secs", 1)
	v.SetDefault("discovery.max_delay_secs", 2)
	v.SetDefault("discovery.min_repo_stars", 5)
	v.SetDefault("research.workers", 1)
	v.SetDefault("research.min_delay_secs", 3)
	v.SetDefault("research.max_delay_secs", 6)
	v.SetDefault("research.max_retries", 3)
	v.SetDefault("export.output_file", "Benchmark.xlsx")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
