package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantcalc/internal/riskmetrics/application"
	"github.com/wyfcoding/quantcalc/internal/riskmetrics/domain"
	"github.com/wyfcoding/quantcalc/pkg/logger"
)

// RiskMetricsHandler HTTP 处理器
type RiskMetricsHandler struct {
	app *application.RiskService
}

// NewRiskMetricsHandler 创建 HTTP 处理器实例
func NewRiskMetricsHandler(app *application.RiskService) *RiskMetricsHandler {
	return &RiskMetricsHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *RiskMetricsHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/risk-metrics")
	{
		api.POST("/calculate", h.Calculate)
	}
}

// CalculateRequest 风险指标请求体
type CalculateRequest struct {
	PnLSeries       []float64 `json:"pnl_series" binding:"required"`
	ConfidenceLevel float64   `json:"confidence_level" binding:"required"`
	RiskFreeRate    float64   `json:"risk_free_rate"`
}

// Calculate 风险指标计算
func (h *RiskMetricsHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.app.Calculate(c.Request.Context(), application.RiskCommand{
		PnLSeries:       req.PnLSeries,
		ConfidenceLevel: req.ConfidenceLevel,
		RiskFreeRate:    req.RiskFreeRate,
	})
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
			return
		}
		logger.WithContext(c.Request.Context()).Error("Failed to calculate risk metrics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
