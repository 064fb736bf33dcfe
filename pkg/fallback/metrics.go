package fallback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindSummary     = "summary"
	kindLeaderboard = "leaderboard"
	kindDetail      = "detail"
	kindMetrics     = "metrics"

	outcomeSynthesized = "synthesized"
	outcomeAbsent      = "absent"
	outcomeError       = "error"
)

var synthesisTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "skillsight_fallback_synthesis_total",
		Help: "Total number of fallback synthesis attempts by kind and outcome",
	},
	[]string{"kind", "outcome"},
)
