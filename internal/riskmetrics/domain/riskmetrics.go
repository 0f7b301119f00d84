// Package domain 提供基于历史盈亏序列的尾部风险指标计算
package domain

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// 年化 Sharpe 比率假设的交易日数
const tradingDaysPerYear = 252

// RiskInput 风险指标计算输入
type RiskInput struct {
	PnLSeries       []float64 `json:"pnl_series"`       // 每期盈亏序列（货币单位）
	ConfidenceLevel float64   `json:"confidence_level"` // 置信度, e.g., 0.95, 0.99
	RiskFreeRate    float64   `json:"risk_free_rate"`   // 年化无风险利率，用于 Sharpe
}

// RiskResult 风险指标计算结果
type RiskResult struct {
	HistoricalVaR  decimal.Decimal `json:"historical_var"`  // 历史模拟法 VaR（正数表示损失）
	HistoricalCVaR decimal.Decimal `json:"historical_cvar"` // 期望损失 ES/CVaR
	ParametricVaR  decimal.Decimal `json:"parametric_var"`  // 方差-协方差法 VaR
	MaxDrawdown    decimal.Decimal `json:"max_drawdown"`    // 累计盈亏曲线的最大回撤
	SharpeRatio    decimal.Decimal `json:"sharpe_ratio"`    // 年化 Sharpe 比率
	Observations   int             `json:"observations"`
}

// InvalidInputError 入参校验错误
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input \"" + e.Field + "\": " + e.Reason
}

// 标准正态分布分位数（常用置信度查表，其余用 Acklam 逼近）
func normalQuantile(p float64) float64 {
	switch p {
	case 0.95:
		return 1.6448536269514722
	case 0.99:
		return 2.3263478740408408
	}
	return acklamInverseCDF(p)
}

// acklamInverseCDF Peter Acklam 的标准正态逆 CDF 有理逼近
func acklamInverseCDF(p float64) float64 {
	a := []float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02, 1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	b := []float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02, 6.680131188771972e+01, -1.328068155288572e+01}
	c := []float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00, -2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	d := []float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00, 3.754408661907416e+00}

	const plow = 0.02425
	phigh := 1 - plow

	switch {
	case p < plow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > phigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}

// CalculateRiskMetrics 对盈亏序列计算 VaR / CVaR / 参数法 VaR / 最大回撤 / Sharpe
func CalculateRiskMetrics(input RiskInput) (*RiskResult, error) {
	if len(input.PnLSeries) == 0 {
		return nil, &InvalidInputError{Field: "pnl_series", Reason: "must not be empty"}
	}
	if input.ConfidenceLevel <= 0 || input.ConfidenceLevel >= 1 {
		return nil, &InvalidInputError{Field: "confidence_level", Reason: "must be in (0, 1)"}
	}

	series := stats.Float64Data(input.PnLSeries)
	n := len(input.PnLSeries)

	// 1. 历史模拟法 VaR：损失分布的 (1-c) 分位点
	lossPercentile := (1 - input.ConfidenceLevel) * 100
	cutoff, err := stats.Percentile(series, lossPercentile)
	if err != nil {
		// Percentile 仅在序列为空时报错，已在入参校验拦截；单元素序列退化为该元素
		cutoff = input.PnLSeries[0]
	}
	historicalVaR := math.Max(-cutoff, 0)

	// 2. CVaR：分位点以下样本的均值
	var tail []float64
	for _, p := range input.PnLSeries {
		if p <= cutoff {
			tail = append(tail, p)
		}
	}
	historicalCVaR := historicalVaR
	if len(tail) > 0 {
		mean, _ := stats.Mean(stats.Float64Data(tail))
		historicalCVaR = math.Max(-mean, 0)
	}

	// 3. 参数法 VaR：均值 + z * 标准差
	mean, _ := stats.Mean(series)
	stdev, _ := stats.StandardDeviationSample(series)
	if n < 2 {
		stdev = 0
	}
	z := normalQuantile(input.ConfidenceLevel)
	parametricVaR := math.Max(z*stdev-mean, 0)

	// 4. 最大回撤：累计盈亏曲线相对历史峰值的最大跌幅
	var cumulative, peak, maxDrawdown float64
	for _, p := range input.PnLSeries {
		cumulative += p
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}

	// 5. 年化 Sharpe：超额收益均值 / 标准差 * sqrt(252)
	var sharpe float64
	if stdev > 0 {
		perPeriodRf := input.RiskFreeRate / tradingDaysPerYear
		sharpe = (mean - perPeriodRf) / stdev * math.Sqrt(tradingDaysPerYear)
	}

	return &RiskResult{
		HistoricalVaR:  decimal.NewFromFloat(historicalVaR).Round(8),
		HistoricalCVaR: decimal.NewFromFloat(historicalCVaR).Round(8),
		ParametricVaR:  decimal.NewFromFloat(parametricVaR).Round(8),
		MaxDrawdown:    decimal.NewFromFloat(maxDrawdown).Round(8),
		SharpeRatio:    decimal.NewFromFloat(sharpe).Round(8),
		Observations:   n,
	}, nil
}
