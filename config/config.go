package config

import (
	"slices"
	"time"

	"github.com/habiliai/toolserver/errors"
)

type (
	Config struct {
		Log       LogConfig       `yaml:"log"`
		Server    ServerConfig    `yaml:"server"`
		Web       WebConfig       `yaml:"web"`
		Knowledge KnowledgeConfig `yaml:"knowledge"`
		Feed      FeedConfig      `yaml:"feed"`
	}

	LogConfig struct {
		// LogLevel is one of debug, info, warn, error.
		LogLevel string `yaml:"level" env:"LOG_LEVEL"`
		// LogHandler selects "json" or the colored text handler ("default").
		LogHandler string `yaml:"handler" env:"LOG_HANDLER"`
	}

	ServerConfig struct {
		Host string `yaml:"host" env:"HOST"`
		Port int    `yaml:"port" env:"PORT"`
		// StaticDir is served for every path that is not a tool route.
		StaticDir string `yaml:"staticDir" env:"STATIC_DIR"`
		// MaxBodyBytes bounds the JSON body of a tool invocation.
		MaxBodyBytes    int64         `yaml:"maxBodyBytes" env:"MAX_BODY_BYTES"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	}

	WebConfig struct {
		// SearchURL is the HTML search page; the query is sent as ?q=.
		SearchURL string `yaml:"searchUrl" env:"WEB_SEARCH_URL"`
		UserAgent string `yaml:"userAgent" env:"USER_AGENT"`
		// FetchTimeout bounds every outbound request made by a tool.
		FetchTimeout time.Duration `yaml:"fetchTimeout"`
	}

	KnowledgeConfig struct {
		WikiAPIURL       string `yaml:"wikiApiUrl" env:"WIKI_API_URL"`
		SearchLimit      int    `yaml:"searchLimit" env:"WIKI_SEARCH_LIMIT"`
		SummarySentences int    `yaml:"summarySentences" env:"WIKI_SUMMARY_SENTENCES"`
		// FullContentPages is how many of the top search hits the wiki tool
		// renders with their full text.
		FullContentPages int `yaml:"fullContentPages" env:"WIKI_FULL_CONTENT_PAGES"`
		Concurrency      int `yaml:"concurrency" env:"WIKI_CONCURRENCY"`
	}

	FeedConfig struct {
		DefaultLimit int `yaml:"defaultLimit" env:"FEED_DEFAULT_LIMIT"`
	}
)

func NewLogConfig() *LogConfig {
	return &LogConfig{
		LogLevel:   "debug",
		LogHandler: "default",
	}
}

// NewConfig returns the defaults used when nothing is configured: port 8088
// on all interfaces, files served from the working directory.
func NewConfig() *Config {
	return &Config{
		Log: *NewLogConfig(),
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8088,
			StaticDir:       ".",
			MaxBodyBytes:    8 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Web: WebConfig{
			SearchURL:    "https://duckduckgo.com/html/",
			UserAgent:    "Mozilla/5.0",
			FetchTimeout: 15 * time.Second,
		},
		Knowledge: KnowledgeConfig{
			WikiAPIURL:       "https://en.wikipedia.org/w/api.php",
			SearchLimit:      10,
			SummarySentences: 3,
			FullContentPages: 3,
			Concurrency:      4,
		},
		Feed: FeedConfig{
			DefaultLimit: 10,
		},
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.LogLevel) {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown log level %q", c.Log.LogLevel)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Wrapf(errors.ErrInvalidConfig, "port %d out of range", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "maxBodyBytes must be positive")
	}
	if c.Web.SearchURL == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "web searchUrl is required")
	}
	if c.Web.FetchTimeout <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "fetchTimeout must be positive, got %s", c.Web.FetchTimeout)
	}
	if c.Knowledge.WikiAPIURL == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "knowledge wikiApiUrl is required")
	}
	if c.Knowledge.SearchLimit <= 0 || c.Knowledge.Concurrency <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "knowledge searchLimit and concurrency must be positive")
	}
	if c.Feed.DefaultLimit <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "feed defaultLimit must be positive")
	}
	return nil
}
