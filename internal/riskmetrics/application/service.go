// Package application 提供风险指标计算的应用服务与结果信封
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/wyfcoding/quantcalc/internal/riskmetrics/domain"
)

// Methodology 结果信封携带的方法论标签
const Methodology = "historical simulation + variance-covariance VaR"

// RiskCommand 风险指标计算命令
type RiskCommand struct {
	PnLSeries       []float64 `json:"pnl_series"`
	ConfidenceLevel float64   `json:"confidence_level"`
	RiskFreeRate    float64   `json:"risk_free_rate"`
}

// RiskDTO 风险指标计算结果信封
type RiskDTO struct {
	Methodology    string   `json:"methodology"`
	HistoricalVaR  float64  `json:"historical_var"`
	HistoricalCVaR float64  `json:"historical_cvar"`
	ParametricVaR  float64  `json:"parametric_var"`
	MaxDrawdown    float64  `json:"max_drawdown"`
	SharpeRatio    float64  `json:"sharpe_ratio"`
	Observations   int      `json:"observations"`
	Warnings       []string `json:"warnings"`
	ElapsedMs      int64    `json:"elapsed_ms"`
}

// RiskService 风险指标应用服务
type RiskService struct {
	logger *slog.Logger
}

func NewRiskService(logger *slog.Logger) *RiskService {
	return &RiskService{logger: logger}
}

// Calculate 执行一次风险指标计算
func (s *RiskService) Calculate(ctx context.Context, cmd RiskCommand) (*RiskDTO, error) {
	start := time.Now()

	result, err := domain.CalculateRiskMetrics(domain.RiskInput{
		PnLSeries:       cmd.PnLSeries,
		ConfidenceLevel: cmd.ConfidenceLevel,
		RiskFreeRate:    cmd.RiskFreeRate,
	})
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	// 样本过少时参数法 VaR 不可靠
	if result.Observations < 30 {
		warnings = append(warnings, "fewer than 30 observations; parametric VaR may be unreliable")
	}

	dto := &RiskDTO{
		Methodology:    Methodology,
		HistoricalVaR:  result.HistoricalVaR.InexactFloat64(),
		HistoricalCVaR: result.HistoricalCVaR.InexactFloat64(),
		ParametricVaR:  result.ParametricVaR.InexactFloat64(),
		MaxDrawdown:    result.MaxDrawdown.InexactFloat64(),
		SharpeRatio:    result.SharpeRatio.InexactFloat64(),
		Observations:   result.Observations,
		Warnings:       warnings,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "risk metrics calculated",
		"observations", dto.Observations,
		"confidence", cmd.ConfidenceLevel,
		"elapsed_ms", dto.ElapsedMs,
	)
	return dto, nil
}
