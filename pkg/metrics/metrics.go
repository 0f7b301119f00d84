// Package metrics 提供 Prometheus helper，覆盖 HTTP 请求与计算任务两类指标
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/quantcalc/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 计算任务计数
	CalculationsTotal prometheus.Counter
	// 计算失败计数（入参校验不通过）
	CalculationErrorsTotal prometheus.Counter
	// 计算耗时
	CalculationDuration prometheus.Histogram
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quantcalc",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quantcalc",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		CalculationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quantcalc",
			Subsystem: serviceName,
			Name:      "calculations_total",
			Help:      "Total calculations performed",
		}),
		CalculationErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quantcalc",
			Subsystem: serviceName,
			Name:      "calculation_errors_total",
			Help:      "Total calculations rejected by input validation",
		}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quantcalc",
			Subsystem: serviceName,
			Name:      "calculation_duration_seconds",
			Help:      "Calculation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CalculationsTotal,
		m.CalculationErrorsTotal,
		m.CalculationDuration,
	}
	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}
	return nil
}

// GinMiddleware 记录 HTTP 请求指标；POST 请求视为一次计算，按响应状态归类
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start).Seconds()

		m.HTTPRequestsTotal.Inc()
		m.HTTPRequestDuration.Observe(elapsed)

		if c.Request.Method == http.MethodPost {
			m.CalculationsTotal.Inc()
			m.CalculationDuration.Observe(elapsed)
			if c.Writer.Status() >= http.StatusBadRequest {
				m.CalculationErrorsTotal.Inc()
			}
		}
	}
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}
	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()
	return nil
}
