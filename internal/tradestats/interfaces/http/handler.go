package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantcalc/internal/tradestats/application"
	"github.com/wyfcoding/quantcalc/internal/tradestats/domain"
	"github.com/wyfcoding/quantcalc/pkg/logger"
)

// TradeStatsHandler HTTP 处理器
type TradeStatsHandler struct {
	app *application.StatsService
}

// NewTradeStatsHandler 创建 HTTP 处理器实例
func NewTradeStatsHandler(app *application.StatsService) *TradeStatsHandler {
	return &TradeStatsHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *TradeStatsHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/trade-stats")
	{
		api.POST("/calculate", h.Calculate)
	}
}

// CalculateRequest 交易统计请求体
type CalculateRequest struct {
	Trades []application.TradeDTO `json:"trades" binding:"required"`
}

// Calculate 交易统计计算
func (h *TradeStatsHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.app.Calculate(c.Request.Context(), application.StatsCommand{Trades: req.Trades})
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
			return
		}
		logger.WithContext(c.Request.Context()).Error("Failed to calculate trade statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
