package udmcorpus

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"UDMCORPUS_URL", "UDMCORPUS_ANALYZER_URL", "UDMCORPUS_TIMEOUT", "UDMCORPUS_MAX_RETRIES", "UDMCORPUS_USER_AGENT"} {
		_ = os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.HasAnalyzer() {
		t.Error("HasAnalyzer should be false without UDMCORPUS_ANALYZER_URL")
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	_ = os.Setenv("UDMCORPUS_URL", "http://localhost:9999/api")
	_ = os.Setenv("UDMCORPUS_ANALYZER_URL", "http://localhost:8888")
	_ = os.Setenv("UDMCORPUS_TIMEOUT", "5s")
	_ = os.Setenv("UDMCORPUS_MAX_RETRIES", "1")
	_ = os.Setenv("UDMCORPUS_USER_AGENT", "env-agent/2.0")
	defer func() {
		for _, key := range []string{"UDMCORPUS_URL", "UDMCORPUS_ANALYZER_URL", "UDMCORPUS_TIMEOUT", "UDMCORPUS_MAX_RETRIES", "UDMCORPUS_USER_AGENT"} {
			_ = os.Unsetenv(key)
		}
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BaseURL != "http://localhost:9999/api" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	if cfg.AnalyzerURL != "http://localhost:8888" {
		t.Errorf("AnalyzerURL = %q, want env value", cfg.AnalyzerURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
	if cfg.UserAgent != "env-agent/2.0" {
		t.Errorf("UserAgent = %q, want env value", cfg.UserAgent)
	}
	if !cfg.HasAnalyzer() {
		t.Error("HasAnalyzer should be true")
	}
}

func TestLoadConfig_IgnoresInvalidValues(t *testing.T) {
	_ = os.Setenv("UDMCORPUS_TIMEOUT", "not-a-duration")
	_ = os.Setenv("UDMCORPUS_MAX_RETRIES", "-5")
	defer func() {
		_ = os.Unsetenv("UDMCORPUS_TIMEOUT")
		_ = os.Unsetenv("UDMCORPUS_MAX_RETRIES")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s for invalid input", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want default 3 for negative input", cfg.MaxRetries)
	}
}
