package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "converter_upstream_requests_total",
		Help: "Requests issued to upstream rate APIs.",
	}, []string{"call", "status"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "converter_cache_lookups_total",
		Help: "Memoized lookups by result.",
	}, []string{"call", "result"})

	resolveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "converter_resolve_total",
		Help: "Rate resolutions by source label, or failed.",
	}, []string{"source"})
)
