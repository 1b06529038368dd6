package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jmehdipour/churn-insights/internal/config"
	"github.com/jmehdipour/churn-insights/internal/http/middleware"
	"github.com/jmehdipour/churn-insights/internal/metrics"
	"github.com/jmehdipour/churn-insights/internal/provider"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

// NewServer wires the reporting API. counter may be nil, which disables rate
// limiting.
func NewServer(cfg config.Config, prov *provider.Provider, counter middleware.Counter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	// rate limit keys on the peer address; forwarding headers are client input
	e.IPExtractor = echo.ExtractIPDirect()
	// metrics sit outside Recover so panics are counted as 500s
	e.Use(requestMetrics(), echoMid.Recover(), requestLogger(logger))

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Counter:        counter,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      cfg.RateLimit.KeyPrefix,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", rlMW)
	v1.GET("/summary", summaryHandler(prov))
	v1.GET("/churn", churnByHandler(prov))
	v1.GET("/churn/distribution", distributionHandler(prov))
	v1.GET("/average", averageHandler(prov))
	v1.GET("/customers", listCustomersHandler(prov))
	v1.GET("/risk", riskHandler(prov))
	v1.GET("/sql", sqlHandler())
	v1.GET("/insights", insightsHandler())

	return &Server{e: e, log: logger}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return echoMid.RequestLoggerWithConfig(echoMid.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echoMid.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("request", fields...)
			return nil
		},
	})
}

// requestMetrics counts requests by route template, not raw path, to keep
// label cardinality fixed.
func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			code := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
			return err
		}
	}
}
