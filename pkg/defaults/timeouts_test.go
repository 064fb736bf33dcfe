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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// Handler timeouts
		{"ReadHandlerTimeout", ReadHandlerTimeout, 5 * time.Second, 30 * time.Second},
		{"SearchHandlerTimeout", SearchHandlerTimeout, 5 * time.Second, 30 * time.Second},

		// Storage timeouts
		{"StorageReadTimeout", StorageReadTimeout, 1 * time.Second, 30 * time.Second},
		{"StorageConnectTimeout", StorageConnectTimeout, 1 * time.Second, 15 * time.Second},

		// Cache durations
		{"ResponseCacheTTL", ResponseCacheTTL, 10 * time.Second, 5 * time.Minute},
		{"DecodedCacheTTL", DecodedCacheTTL, 10 * time.Second, 5 * time.Minute},
		{"EdgeCacheOpTimeout", EdgeCacheOpTimeout, 100 * time.Millisecond, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	// Read timeout should be shorter than write timeout
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}

	// Idle timeout should be longer than write timeout
	if ServerIdleTimeout < ServerWriteTimeout {
		t.Errorf("ServerIdleTimeout (%v) should be at least ServerWriteTimeout (%v)",
			ServerIdleTimeout, ServerWriteTimeout)
	}
}

func TestHandlerTimeoutsFitWriteTimeout(t *testing.T) {
	// Handlers must finish before the server write timeout cuts the
	// connection, leaving room for the error envelope to be written.
	if ReadHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("ReadHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			ReadHandlerTimeout, ServerWriteTimeout)
	}
	if SearchHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("SearchHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			SearchHandlerTimeout, ServerWriteTimeout)
	}
}

func TestStorageTimeoutFitsHandlerBudget(t *testing.T) {
	// A single storage read must fit within a read handler invocation,
	// which may need a second read for lookup fallback.
	if StorageReadTimeout >= ReadHandlerTimeout {
		t.Errorf("StorageReadTimeout (%v) should be less than ReadHandlerTimeout (%v)",
			StorageReadTimeout, ReadHandlerTimeout)
	}
}

func TestCacheDurationsTrackWindow(t *testing.T) {
	// Shared and in-process caches expire on the same cadence so both
	// tiers converge on a new snapshot at the same time.
	if ResponseCacheTTL != DecodedCacheTTL {
		t.Errorf("ResponseCacheTTL (%v) and DecodedCacheTTL (%v) expected to match",
			ResponseCacheTTL, DecodedCacheTTL)
	}
	if time.Duration(ResponseCacheMaxAge)*time.Second != ResponseCacheTTL {
		t.Errorf("ResponseCacheMaxAge (%d) should equal ResponseCacheTTL in seconds (%v)",
			ResponseCacheMaxAge, ResponseCacheTTL)
	}
}
