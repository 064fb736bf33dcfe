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

package server

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wyattowalsh/skillsight/pkg/defaults"
	"github.com/wyattowalsh/skillsight/pkg/ratelimit"
)

// Config holds server configuration.
type Config struct {
	// Server identity, reported on the root route and in logs.
	Name    string
	Version string

	// Handlers maps route patterns to application handlers. Every
	// entry is wrapped in the full middleware chain, including both
	// rate limiters.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// Global rate limit: a process-wide token bucket backstop applied
	// before the per-client limiter.
	RateLimit      rate.Limit
	RateLimitBurst int

	// Per-client fixed-window admission control. When ClientLimiter is
	// nil one is built from ClientRateLimit/ClientRateWindow.
	ClientLimiter   *ratelimit.Limiter
	ClientRateLimit int
	ClientRateWin   time.Duration

	// ClientIPHeader is the trusted header carrying the client IP.
	// Requests without it share the "unknown" bucket.
	ClientIPHeader string

	// CacheMaxAge is the Cache-Control max-age (seconds) stamped on
	// successful responses unless a handler overrides it.
	CacheMaxAge int

	// SnapshotDate reports the currently cached snapshot date for the
	// health endpoint. Optional; must not block.
	SnapshotDate func() (string, bool)

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Name:            "server",
		Version:         "undefined",
		Address:         "",
		Port:            8080,
		RateLimit:       100,
		RateLimitBurst:  200,
		ClientRateLimit: defaults.ClientRateLimit,
		ClientRateWin:   defaults.ClientRateWindow,
		ClientIPHeader:  "CF-Connecting-IP",
		CacheMaxAge:     defaults.ResponseCacheMaxAge,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}
}

// Option customizes a Config.
type Option func(*Config)

// WithName sets the server identity name.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithVersion sets the reported version.
func WithVersion(version string) Option {
	return func(c *Config) { c.Version = version }
}

// WithHandlers registers the application route map.
func WithHandlers(handlers map[string]http.HandlerFunc) Option {
	return func(c *Config) { c.Handlers = handlers }
}

// WithPort overrides the listen port.
func WithPort(port int) Option {
	return func(c *Config) { c.Port = port }
}

// WithClientLimiter injects a per-client limiter, replacing the one
// built from ClientRateLimit/ClientRateWin.
func WithClientLimiter(l *ratelimit.Limiter) Option {
	return func(c *Config) { c.ClientLimiter = l }
}

// WithClientRate sets the per-client window capacity and duration.
func WithClientRate(limit int, window time.Duration) Option {
	return func(c *Config) {
		c.ClientRateLimit = limit
		c.ClientRateWin = window
	}
}

// WithClientIPHeader sets the trusted client IP header name.
func WithClientIPHeader(name string) Option {
	return func(c *Config) { c.ClientIPHeader = name }
}

// WithGlobalRate sets the process-wide backstop limiter.
func WithGlobalRate(limit rate.Limit, burst int) Option {
	return func(c *Config) {
		c.RateLimit = limit
		c.RateLimitBurst = burst
	}
}

// WithSnapshotDate wires the health endpoint's snapshot reporter.
func WithSnapshotDate(fn func() (string, bool)) Option {
	return func(c *Config) { c.SnapshotDate = fn }
}
