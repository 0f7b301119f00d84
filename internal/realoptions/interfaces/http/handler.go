package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantcalc/internal/realoptions/application"
	"github.com/wyfcoding/quantcalc/internal/realoptions/domain"
	"github.com/wyfcoding/quantcalc/pkg/logger"
)

// RealOptionsHandler HTTP 处理器
type RealOptionsHandler struct {
	app *application.ValuationService
}

// NewRealOptionsHandler 创建 HTTP 处理器实例
func NewRealOptionsHandler(app *application.ValuationService) *RealOptionsHandler {
	return &RealOptionsHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *RealOptionsHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/real-options")
	{
		api.POST("/value", h.ValueOption)
	}
}

// ValueOptionRequest 估值请求体
type ValueOptionRequest struct {
	Archetype       string  `json:"archetype" binding:"required"`
	UnderlyingValue float64 `json:"underlying_value" binding:"required"`
	ExercisePrice   float64 `json:"exercise_price" binding:"required"`
	Volatility      float64 `json:"volatility"`
	RiskFreeRate    float64 `json:"risk_free_rate"`
	TimeToExpiry    float64 `json:"time_to_expiry" binding:"required"`
	Steps           int     `json:"steps" binding:"required"`
	DividendYield   float64 `json:"dividend_yield"`

	ExpansionFactor   *float64 `json:"expansion_factor"`
	ContractionFactor *float64 `json:"contraction_factor"`
	SwitchCost        *float64 `json:"switch_cost"`
	SwitchValueRatio  *float64 `json:"switch_value_ratio"`
}

// ValueOption 实物期权估值
func (h *RealOptionsHandler) ValueOption(c *gin.Context) {
	var req ValueOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.ValueOptionCommand{
		Archetype:         req.Archetype,
		UnderlyingValue:   req.UnderlyingValue,
		ExercisePrice:     req.ExercisePrice,
		Volatility:        req.Volatility,
		RiskFreeRate:      req.RiskFreeRate,
		TimeToExpiry:      req.TimeToExpiry,
		Steps:             req.Steps,
		DividendYield:     req.DividendYield,
		ExpansionFactor:   req.ExpansionFactor,
		ContractionFactor: req.ContractionFactor,
		SwitchCost:        req.SwitchCost,
		SwitchValueRatio:  req.SwitchValueRatio,
	}

	result, err := h.app.ValueOption(c.Request.Context(), cmd)
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
			return
		}
		logger.WithContext(c.Request.Context()).Error("Failed to value real option", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
