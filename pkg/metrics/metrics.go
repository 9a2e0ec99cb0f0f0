package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequests counts handled requests by method, route template and status
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "trivia_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"method", "route", "status"},
)

// HTTPLatency records request latency by method and route template
var HTTPLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "trivia_http_request_duration_seconds",
		Help:    "Latency in seconds to serve HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// QuizQuestionsServed counts quiz draws; result is "question" or "exhausted"
var QuizQuestionsServed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "trivia_quiz_questions_served_total",
		Help: "Total number of quiz draws by outcome",
	},
	[]string{"result"},
)

// Database connection pool metrics
var (
	DBOpenConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trivia_db_open_connections",
			Help: "Number of open connections in the DB pool",
		},
		[]string{"db"},
	)

	DBIdleConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trivia_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
		[]string{"db"},
	)

	DBInUseConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trivia_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
		[]string{"db"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, QuizQuestionsServed)
	prometheus.MustRegister(DBOpenConns, DBIdleConns, DBInUseConns)
}

// ObserveDBStats copies pool statistics into the DB gauges.
func ObserveDBStats(db string, stats sql.DBStats) {
	DBOpenConns.WithLabelValues(db).Set(float64(stats.OpenConnections))
	DBIdleConns.WithLabelValues(db).Set(float64(stats.Idle))
	DBInUseConns.WithLabelValues(db).Set(float64(stats.InUse))
}
