package udmcorpus

import (
	"os"
	"strconv"
	"time"
)

// Config holds corpus connection settings
type Config struct {
	// BaseURL is the corpus API root (default https://udmcorpus.udman.ru/api/public)
	BaseURL string

	// AnalyzerURL is the morphological analyzer service root (optional;
	// without it the lemma fallback is unavailable)
	AnalyzerURL string

	// Timeout for API requests
	Timeout time.Duration

	// UserAgent identifies the client to the corpus
	UserAgent string

	// MaxRetries for failed requests
	MaxRetries int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("UDMCORPUS_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := 30 * time.Second
	if t := os.Getenv("UDMCORPUS_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	maxRetries := 3
	if r := os.Getenv("UDMCORPUS_MAX_RETRIES"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n >= 0 {
			maxRetries = n
		}
	}

	userAgent := os.Getenv("UDMCORPUS_USER_AGENT")
	if userAgent == "" {
		userAgent = "udmcorpus-wrapper/1.0 (https://github.com/codemurt/udmcorpus-wrapper)"
	}

	return &Config{
		BaseURL:     baseURL,
		AnalyzerURL: os.Getenv("UDMCORPUS_ANALYZER_URL"),
		Timeout:     timeout,
		UserAgent:   userAgent,
		MaxRetries:  maxRetries,
	}, nil
}

// HasAnalyzer returns true if a morphological analyzer service is configured
func (c *Config) HasAnalyzer() bool {
	return c.AnalyzerURL != ""
}
