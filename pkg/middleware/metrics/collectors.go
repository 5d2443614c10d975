package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5},
		},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	optionValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "doris_sink_option_value",
			Help: "effective execution option per sink (booleans as 0/1).",
		},
		[]string{"sink", "option"},
	)

	buildFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doris_sink_option_build_failures_total",
			Help: "execution options rejected at build, by error kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsToUri,
		totalHttpRequests,
		optionValue,
		buildFailures,
	)
}
