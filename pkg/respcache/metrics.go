package respcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprintgate_respcache_hits_total",
		Help: "Total number of responses served from the cache",
	})

	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprintgate_respcache_misses_total",
		Help: "Total number of requests that invoked the downstream handler",
	})

	evictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprintgate_respcache_evictions_total",
		Help: "Total number of expired entries removed by capacity sweeps",
	})

	clearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprintgate_respcache_clears_total",
		Help: "Total number of full-store clears under capacity pressure",
	})
)
