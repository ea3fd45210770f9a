package http

import (
	"log/slog"
	"strconv"
	"time"

	"freight/internal/core/application/actor"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// UserIDHeader carries the caller's user id.
const UserIDHeader = "X-User-ID"

// actorMiddleware attaches the caller to the request context. Capabilities
// are resolved once here; handlers and use cases never consult the checker.
func actorMiddleware(checker ports.PermissionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get(UserIDHeader)

			var granted []actor.Capability
			for _, capability := range actor.Capabilities() {
				if userID != "" && checker.HasCapability(userID, capability) {
					granted = append(granted, capability)
				}
			}

			req := c.Request()
			c.SetRequest(req.WithContext(actor.WithActor(req.Context(), actor.New(userID, granted...))))
			return next(c)
		}
	}
}

// requireUser rejects anonymous callers.
func requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if actor.FromContext(c.Request().Context()).IsAnonymous() {
			return errs.NewPermissionDeniedError("", "identity")
		}
		return next(c)
	}
}

// require rejects callers without the capability.
func require(capability actor.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a := actor.FromContext(c.Request().Context())
			if !a.Can(capability) {
				return errs.NewPermissionDeniedError(a.UserID(), string(capability))
			}
			return next(c)
		}
	}
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}
			logger.InfoContext(c.Request().Context(), "request",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"latency_ms", float64(time.Since(start).Microseconds())/1000,
				"user_id", c.Request().Header.Get(UserIDHeader),
			)
			return err
		}
	}
}

// HTTPMetrics counts requests and observes their latency by route pattern.
type HTTPMetrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware skips /metrics. Unmatched routes are labelled with the raw path.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}
			m.requestCount.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
