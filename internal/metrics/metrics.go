package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transfer kinds.
const (
	KindInternal = "internal"
	KindExternal = "external"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	usersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_users_registered_total",
			Help: "Users registered",
		},
	)

	walletsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_wallets_created_total",
			Help: "Wallets created",
		},
	)

	transfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transfers_total",
			Help: "Committed transfers by kind",
		},
		[]string{"kind"},
	)

	feesCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_fees_collected_sat_total",
			Help: "Transfer fees collected, in satoshis",
		},
	)
)

func UserRegistered() { usersRegistered.Inc() }

func WalletCreated() { walletsCreated.Inc() }

// TransferCommitted records a committed transfer. A transfer that charged no
// fee counts as internal.
func TransferCommitted(feeSat int64) {
	kind := KindInternal
	if feeSat > 0 {
		kind = KindExternal
	}
	transfers.WithLabelValues(kind).Inc()
	feesCollected.Add(float64(feeSat))
}

// Middleware records the count and latency of every request under its route
// template, so /wallets/:address is one series.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
