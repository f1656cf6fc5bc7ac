package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func load(t *testing.T) (*Config, error) {
	t.Helper()
	viper.Reset()
	Init()
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint: got %q", cfg.Endpoint)
	}
	if cfg.MetadataPrefix != "oai_dc" {
		t.Errorf("metadata prefix: got %q", cfg.MetadataPrefix)
	}
	if cfg.Delay != time.Second {
		t.Errorf("delay: got %v", cfg.Delay)
	}
	if cfg.DiscoveryDelay != 500*time.Millisecond {
		t.Errorf("discovery delay: got %v", cfg.DiscoveryDelay)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v", cfg.Timeout)
	}
	if cfg.MaxRecords != 0 {
		t.Errorf("max records: got %d", cfg.MaxRecords)
	}
	if len(cfg.URLRules) != 2 {
		t.Errorf("expected the default URL rules, got %+v", cfg.URLRules)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PERSEE_DELAY", "2s")
	t.Setenv("PERSEE_MAX_RECORDS", "100")
	t.Setenv("PERSEE_ENDPOINT", "http://oai.example.org/oai")

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Delay != 2*time.Second {
		t.Errorf("delay: got %v", cfg.Delay)
	}
	if cfg.MaxRecords != 100 {
		t.Errorf("max records: got %d", cfg.MaxRecords)
	}
	if cfg.Endpoint != "http://oai.example.org/oai" {
		t.Errorf("endpoint: got %q", cfg.Endpoint)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("PERSEE_LOG_LEVEL", "verbose")

	if _, err := load(t); err == nil {
		t.Fatal("expected validation error for bad log level")
	}
}
