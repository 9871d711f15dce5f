package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"escolta/internal/metrics"
)

// PrometheusMetrics records request counts and latency per route template.
// The scrape endpoint and the swagger UI are excluded to keep the series
// set bounded to application traffic.
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Path()
		if path == "/metrics" || strings.HasPrefix(path, "/swagger") {
			return next(c)
		}

		start := time.Now()
		err := next(c)

		// Unmatched routes all collapse into one label value, a scanner
		// probing random URLs must not mint new series.
		if path == "" {
			path = "unmatched"
		}

		status := c.Response().Status
		if err != nil && !c.Response().Committed {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			path,
			strconv.Itoa(status),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			path,
		).Observe(time.Since(start).Seconds())

		return err
	}
}
