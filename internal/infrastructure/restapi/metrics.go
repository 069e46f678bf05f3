package restapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	balanceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splits_checker_balance_fetches_total",
			Help: "Balance fetch requests served, by source kind and outcome.",
		},
		[]string{"source", "status"},
	)
)

func recordFetch(source string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	balanceFetchesTotal.WithLabelValues(source, status).Inc()
}
