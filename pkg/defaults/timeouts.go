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

package defaults

import "time"

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// ReadHandlerTimeout is the per-request timeout for read endpoints.
	// Covers object storage round trips plus fallback synthesis.
	ReadHandlerTimeout = 20 * time.Second

	// SearchHandlerTimeout bounds search requests, which may fan out to
	// several page objects on the fallback path.
	SearchHandlerTimeout = 25 * time.Second
)

// Cache durations.
const (
	// ResponseCacheTTL is the shared response cache entry lifetime.
	ResponseCacheTTL = 60 * time.Second

	// DecodedCacheTTL is the in-process decoded document cache lifetime.
	// Matches the daily snapshot cadence tolerance: a stale manifest is
	// served for at most this long after a new snapshot publishes.
	DecodedCacheTTL = 60 * time.Second

	// ResponseCacheMaxAge is the public Cache-Control max-age in seconds.
	ResponseCacheMaxAge = 60
)

// Rate limiting defaults.
const (
	// ClientRateLimit is the number of requests allowed per client per window.
	ClientRateLimit = 60

	// ClientRateWindow is the per-client fixed window duration.
	ClientRateWindow = 60 * time.Second
)

// Storage timeouts for object storage operations.
const (
	// StorageReadTimeout bounds a single object fetch.
	StorageReadTimeout = 10 * time.Second

	// StorageConnectTimeout bounds connection establishment to the store.
	StorageConnectTimeout = 5 * time.Second
)

// Edge cache timeouts for the shared response cache.
const (
	// EdgeCacheOpTimeout bounds a single cache get or set. The cache is
	// best-effort, so slow cache operations must not stall reads.
	EdgeCacheOpTimeout = 2 * time.Second
)
