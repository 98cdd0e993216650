package mcpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spyglass",
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Total MCP tool calls",
		},
		[]string{"tool", "outcome"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spyglass",
			Subsystem: "mcp",
			Name:      "schema_search_duration_seconds",
			Help:      "Duration of schema search operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	searchMatchedTypes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spyglass",
			Subsystem: "mcp",
			Name:      "schema_search_matched_types",
			Help:      "Number of schema types matched per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		},
	)
)
