package authgate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sprintgate_authgate_rejections_total",
		Help: "Total number of requests rejected at admission",
	},
	[]string{"reason"},
)
