// Package api is the composition root for the skillsight read API.
//
// It wires configuration, object storage, the optional shared edge
// cache, the snapshot resolver, the fallback synthesizer, and the
// search engine into one App, then hands the assembled route map to
// pkg/server for serving.
//
// # Usage
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "github.com/wyattowalsh/skillsight/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(context.Background()); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited, GET only):
//   - /v1/search                        - search skills by query
//   - /v1/skills                        - bulk listing
//   - /v1/skills/{owner}/{repo}/{skill} - skill detail
//   - /v1/metrics/{owner}/{repo}/{skill} - install history
//   - /data/v1/*                        - artifact pass-through
//
// System endpoints (no rate limiting):
//   - /         - service descriptor
//   - /health, /healthz - liveness, reports the cached snapshot date
//   - /ready    - readiness
//   - /metrics  - Prometheus metrics
//
// # Configuration
//
// Serve reads its settings from the environment via pkg/config; see
// that package for the key list. Version information is set at build
// time using ldflags:
//
//	go build -ldflags="-X 'github.com/wyattowalsh/skillsight/pkg/api.version=1.0.0'"
package api
