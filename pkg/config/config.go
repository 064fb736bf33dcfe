// Copyright (c) 2025, Skillsight Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads runtime configuration from the environment.
//
// All settings are flat environment keys. A local .env file is honored
// when present to ease development; deployed instances rely on real
// environment variables only.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wyattowalsh/skillsight/pkg/defaults"
)

// Config holds every runtime setting for the read API daemon.
type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// --- object storage (S3 compatible, e.g. R2) ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`

	// --- shared response cache (optional; empty addr disables) ---
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// --- snapshot layout prefixes ---
	WebPrefix    string `mapstructure:"WEB_PREFIX"`
	LegacyPrefix string `mapstructure:"LEGACY_PREFIX"`

	// --- rate limiting and caching ---
	ClientIPHeader    string `mapstructure:"CLIENT_IP_HEADER"`
	RateLimit         int    `mapstructure:"RATE_LIMIT"`
	RateWindowSeconds int    `mapstructure:"RATE_WINDOW_SECONDS"`
	CacheTTLSeconds   int    `mapstructure:"CACHE_TTL_SECONDS"`
	GlobalRateLimit   int    `mapstructure:"GLOBAL_RATE_LIMIT"`
	GlobalRateBurst   int    `mapstructure:"GLOBAL_RATE_BURST"`
}

// envKeys lists every environment key the daemon reads. Keys absent from
// the environment fall back to the defaults registered in LoadFromEnv.
var envKeys = []string{
	"APP_PORT", "LOG_LEVEL",
	"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"S3_USE_SSL", "S3_PATH_STYLE",
	"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
	"WEB_PREFIX", "LEGACY_PREFIX",
	"CLIENT_IP_HEADER", "RATE_LIMIT", "RATE_WINDOW_SECONDS", "CACHE_TTL_SECONDS",
	"GLOBAL_RATE_LIMIT", "GLOBAL_RATE_BURST",
}

// LoadFromEnv loads configuration from environment variables, honoring a
// local .env file when one exists in the working directory.
func LoadFromEnv() (*Config, error) {
	// .env is for local development only
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("S3_USE_SSL", true)
	v.SetDefault("S3_BUCKET", "skillsight-data")
	v.SetDefault("WEB_PREFIX", "data/v1")
	v.SetDefault("LEGACY_PREFIX", "snapshots")
	v.SetDefault("CLIENT_IP_HEADER", "CF-Connecting-IP")
	v.SetDefault("RATE_LIMIT", defaults.ClientRateLimit)
	v.SetDefault("RATE_WINDOW_SECONDS", int(defaults.ClientRateWindow.Seconds()))
	v.SetDefault("CACHE_TTL_SECONDS", int(defaults.ResponseCacheTTL.Seconds()))
	v.SetDefault("GLOBAL_RATE_LIMIT", 100)
	v.SetDefault("GLOBAL_RATE_BURST", 200)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the daemon cannot start without.
func (c *Config) Validate() error {
	if c.S3Endpoint == "" {
		return errors.New("S3_ENDPOINT is required")
	}
	if c.S3Bucket == "" {
		return errors.New("S3_BUCKET is required")
	}
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return fmt.Errorf("APP_PORT %d is out of range", c.AppPort)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateWindowSeconds <= 0 {
		return fmt.Errorf("RATE_WINDOW_SECONDS must be positive, got %d", c.RateWindowSeconds)
	}
	return nil
}

// RateWindow returns the per-client rate limit window as a duration.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateWindowSeconds) * time.Second
}

// CacheTTL returns the response cache entry lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// String implements fmt.Stringer with secrets masked.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %d\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  LogLevel: %s\n", c.LogLevel))
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	sb.WriteString(fmt.Sprintf("  S3AccessKey: %s\n", mask(c.S3AccessKey)))
	sb.WriteString(fmt.Sprintf("  S3SecretKey: %s\n", mask(c.S3SecretKey)))
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))
	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	sb.WriteString(fmt.Sprintf("  RedisPassword: %s\n", mask(c.RedisPassword)))
	sb.WriteString(fmt.Sprintf("  WebPrefix: %s\n", c.WebPrefix))
	sb.WriteString(fmt.Sprintf("  LegacyPrefix: %s\n", c.LegacyPrefix))
	sb.WriteString(fmt.Sprintf("  ClientIPHeader: %s\n", c.ClientIPHeader))
	sb.WriteString(fmt.Sprintf("  RateLimit: %d\n", c.RateLimit))
	sb.WriteString(fmt.Sprintf("  RateWindowSeconds: %d\n", c.RateWindowSeconds))
	sb.WriteString(fmt.Sprintf("  CacheTTLSeconds: %d\n", c.CacheTTLSeconds))
	sb.WriteString(fmt.Sprintf("  GlobalRateLimit: %d\n", c.GlobalRateLimit))
	sb.WriteString(fmt.Sprintf("  GlobalRateBurst: %d\n", c.GlobalRateBurst))
	return sb.String()
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}
