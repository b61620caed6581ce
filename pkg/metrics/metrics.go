package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reply generations by provider and origin (generated | fallback)
	ReplyGenerationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twin_reply_generation_total",
			Help: "Total number of twin reply generations",
		},
		[]string{"provider", "origin"},
	)

	// Fallbacks by cause (unconfigured | persona_data | generation | parse)
	ReplyFallbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twin_reply_fallback_total",
			Help: "Total number of twin replies served from the fallback templates",
		},
		[]string{"cause"},
	)

	// LLM call latency in milliseconds
	LLMCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_latency_ms",
			Help:    "LLM provider call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"provider", "status"},
	)

	// Tokens reported by the provider
	LLMTokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_used_total",
			Help: "Total tokens consumed by LLM calls",
		},
		[]string{"provider"},
	)

	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)
