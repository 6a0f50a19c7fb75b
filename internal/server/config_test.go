package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hypotools/amortize/pkg/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"Empty path", ""},
		{"Missing file", filepath.Join(t.TempDir(), "absent.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			if err != nil {
				t.Fatalf("LoadConfig() error: %v", err)
			}
			if cfg.Address != constants.DefaultServerAddress {
				t.Errorf("address = %q, expected %q", cfg.Address, constants.DefaultServerAddress)
			}
			if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
				t.Errorf("upload size = %d, expected %d", cfg.UploadSizeBytes(), constants.DefaultMaxUploadSizeBytes)
			}
			if cfg.Cache.Backend != "memory" {
				t.Errorf("cache backend = %q, expected memory", cfg.Cache.Backend)
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `address: ":9090"
maxUploadSize: 1M
logging:
  level: debug
cache:
  backend: none
`
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("address = %q, expected :9090", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 1024*1024 {
		t.Errorf("upload size = %d, expected %d", cfg.UploadSizeBytes(), 1024*1024)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, expected debug", cfg.Logging.Level)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q, expected none", cfg.Cache.Backend)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Malformed YAML", "address: [\n"},
		{"Bad upload size", "maxUploadSize: lots\n"},
		{"Unsupported unit", "maxUploadSize: 10T\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig() expected error for %s", tt.name)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"", constants.DefaultMaxUploadSizeBytes},
		{"512", 512},
		{"512B", 512},
		{"256K", 256 * 1024},
		{"256KB", 256 * 1024},
		{"10M", 10 * 1024 * 1024},
		{"10MB", 10 * 1024 * 1024},
		{"1G", 1024 * 1024 * 1024},
		{"2 GB", 2 * 1024 * 1024 * 1024},
		{" 64k ", 64 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if err != nil {
				t.Fatalf("ParseSize(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, input := range []string{"abc", "K", "-1K", "10T", "10X"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseSize(input); err == nil {
				t.Errorf("ParseSize(%q) expected error", input)
			}
		})
	}
}

func TestBuildCache(t *testing.T) {
	tests := []struct {
		name      string
		cache     CacheConfig
		wantNil   bool
		wantError bool
	}{
		{"None", CacheConfig{Backend: "none"}, true, false},
		{"Empty backend", CacheConfig{}, true, false},
		{"Memory", CacheConfig{Backend: "memory"}, false, false},
		{"Redis", CacheConfig{Backend: "redis", RedisAddress: "localhost:6379"}, false, false},
		{"Redis without address", CacheConfig{Backend: "redis"}, true, true},
		{"Unknown backend", CacheConfig{Backend: "memcached"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Cache: tt.cache}
			store, err := cfg.BuildCache()
			if tt.wantError {
				if err == nil {
					t.Fatalf("BuildCache() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildCache() error: %v", err)
			}
			if (store == nil) != tt.wantNil {
				t.Errorf("BuildCache() nil = %v, expected %v", store == nil, tt.wantNil)
			}
		})
	}
}

func TestLoadConfigZeroSizeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("maxUploadSize: \"0\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("upload size = %d, expected default", cfg.UploadSizeBytes())
	}
	if !strings.Contains(cfg.MaxUploadSize, "0") {
		t.Errorf("raw size = %q", cfg.MaxUploadSize)
	}
}
