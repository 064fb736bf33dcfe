package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.S3Bucket != "skillsight-data" {
		t.Errorf("expected default bucket skillsight-data, got %q", cfg.S3Bucket)
	}
	if cfg.WebPrefix != "data/v1" {
		t.Errorf("expected default web prefix data/v1, got %q", cfg.WebPrefix)
	}
	if cfg.LegacyPrefix != "snapshots" {
		t.Errorf("expected default legacy prefix snapshots, got %q", cfg.LegacyPrefix)
	}
	if cfg.ClientIPHeader != "CF-Connecting-IP" {
		t.Errorf("expected default client IP header CF-Connecting-IP, got %q", cfg.ClientIPHeader)
	}
	if cfg.RateLimit != 60 {
		t.Errorf("expected default rate limit 60, got %d", cfg.RateLimit)
	}
	if cfg.RateWindowSeconds != 60 {
		t.Errorf("expected default rate window 60s, got %d", cfg.RateWindowSeconds)
	}
	if cfg.CacheTTLSeconds != 60 {
		t.Errorf("expected default cache ttl 60s, got %d", cfg.CacheTTLSeconds)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("S3_ENDPOINT", "minio.local:9000")
	t.Setenv("S3_BUCKET", "custom-bucket")
	t.Setenv("RATE_LIMIT", "120")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.AppPort)
	}
	if cfg.S3Endpoint != "minio.local:9000" {
		t.Errorf("expected endpoint override, got %q", cfg.S3Endpoint)
	}
	if cfg.S3Bucket != "custom-bucket" {
		t.Errorf("expected bucket override, got %q", cfg.S3Bucket)
	}
	if cfg.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.RateLimit)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis addr override, got %q", cfg.RedisAddr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.S3Endpoint = "" },
			wantErr: true,
		},
		{
			name:    "missing bucket",
			mutate:  func(c *Config) { c.S3Bucket = "" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.AppPort = 70000 },
			wantErr: true,
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *Config) { c.RateLimit = 0 },
			wantErr: true,
		},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.RateWindowSeconds = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				AppPort:           8080,
				S3Endpoint:        "minio.local:9000",
				S3Bucket:          "skillsight-data",
				RateLimit:         60,
				RateWindowSeconds: 60,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{RateWindowSeconds: 60, CacheTTLSeconds: 90}

	if cfg.RateWindow() != 60*time.Second {
		t.Errorf("expected 60s window, got %v", cfg.RateWindow())
	}
	if cfg.CacheTTL() != 90*time.Second {
		t.Errorf("expected 90s ttl, got %v", cfg.CacheTTL())
	}
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := &Config{
		S3AccessKey:   "AKIAEXAMPLE",
		S3SecretKey:   "super-secret",
		RedisPassword: "hunter2",
	}

	out := cfg.String()
	for _, secret := range []string{"AKIAEXAMPLE", "super-secret", "hunter2"} {
		if strings.Contains(out, secret) {
			t.Errorf("config String() leaked secret %q", secret)
		}
	}
	if !strings.Contains(out, "********") {
		t.Error("expected masked values in config String()")
	}
}
