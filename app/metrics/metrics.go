package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TotalRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bridal_http_requests_total",
		Help: "Number of HTTP requests.",
	},
	[]string{"path", "code", "method"},
)

var HttpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "bridal_http_request_duration_seconds",
		Help: "HTTP request latency.",
		Buckets: []float64{
			0.05,
			0.1,
			0.25,
			0.5,
			1,
			2.5,
			5,
		},
	},
	[]string{"path", "code", "method"},
)

var GRPCRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bridal_grpc_requests_total",
		Help: "Number of gRPC requests.",
	},
	[]string{"method", "code"},
)

var PlanSearches = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "bridal_plan_searches_total",
		Help: "Number of plan searches.",
	},
)

var PlanSearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "bridal_plan_search_results",
		Help:    "Number of plans returned per search.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	},
)

var ImageDeleteFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bridal_image_delete_failures_total",
		Help: "Image objects that could not be deleted.",
	},
	[]string{"bucket"},
)

var OrphanImagesDeleted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bridal_orphan_images_deleted_total",
		Help: "Unreferenced image objects removed by the sweep.",
	},
	[]string{"bucket"},
)

// Middleware records request count and latency under the matched route path.
// Handler errors are passed on to the outer middleware and the error handler.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		code := strconv.Itoa(responseStatus(c, err))
		method := c.Request().Method

		TotalRequests.WithLabelValues(path, code, method).Inc()
		HttpDuration.WithLabelValues(path, code, method).Observe(time.Since(start).Seconds())
		return err
	}
}

func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func ObserveSearch(results int) {
	PlanSearches.Inc()
	PlanSearchResults.Observe(float64(results))
}
