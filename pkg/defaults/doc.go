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

// Package defaults provides centralized configuration constants for skillsight.
//
// This package defines timeout values, cache durations, and rate limiting
// defaults used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
// Constants are organized by component:
//
//   - Server timeouts: For HTTP server configuration
//   - Handler timeouts: For HTTP request processing
//   - Cache durations: Response cache TTL and decoded document cache TTL
//   - Rate limiting: Per-client request budget and window
//   - Storage timeouts: For object storage operations
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/wyattowalsh/skillsight/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.StorageReadTimeout)
//	defer cancel()
//
// The 60 second cache durations track the publishing cadence: snapshots
// are produced daily, so a cached document is at most one minute behind
// the latest publish once it lands.
package defaults
