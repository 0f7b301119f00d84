package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantcalc/internal/amortization/application"
	"github.com/wyfcoding/quantcalc/internal/amortization/domain"
	"github.com/wyfcoding/quantcalc/pkg/logger"
)

// AmortizationHandler HTTP 处理器
type AmortizationHandler struct {
	app *application.ScheduleService
}

// NewAmortizationHandler 创建 HTTP 处理器实例
func NewAmortizationHandler(app *application.ScheduleService) *AmortizationHandler {
	return &AmortizationHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *AmortizationHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/amortization")
	{
		api.POST("/schedule", h.BuildSchedule)
	}
}

// ScheduleRequest 摊销计划请求体
type ScheduleRequest struct {
	Principal  float64 `json:"principal" binding:"required"`
	AnnualRate float64 `json:"annual_rate"`
	Months     int     `json:"months" binding:"required"`
}

// BuildSchedule 摊销计划计算
func (h *AmortizationHandler) BuildSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.app.Build(c.Request.Context(), application.ScheduleCommand{
		Principal:  req.Principal,
		AnnualRate: req.AnnualRate,
		Months:     req.Months,
	})
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
			return
		}
		logger.WithContext(c.Request.Context()).Error("Failed to build amortization schedule", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
