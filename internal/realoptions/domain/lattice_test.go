package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deferRequest(steps int) *ValuationRequest {
	return &ValuationRequest{
		Archetype:       ArchetypeDefer,
		UnderlyingValue: dec("100"),
		ExercisePrice:   dec("105"),
		Volatility:      dec("0.30"),
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("1"),
		Steps:           steps,
	}
}

func TestNewLatticeParams(t *testing.T) {
	p := NewLatticeParams(dec("0.30"), dec("0.05"), decimal.Zero, dec("1"), 100)

	// u·d ≈ 1
	prod := p.Up.Mul(p.Down)
	assert.True(t, prod.Sub(one).Abs().LessThan(dec("0.0001")), "u·d = %s", prod)

	// 风险中性概率落在 (0,1) 且 p_up + p_down = 1
	assert.True(t, p.PUp.GreaterThan(zero) && p.PUp.LessThan(one))
	assert.True(t, p.PUp.Add(p.PDown).Sub(one).Abs().LessThan(dec("0.0000001")))

	// 单步贴现因子略小于 1
	assert.True(t, p.Discount.LessThan(one))
	assert.True(t, p.Discount.GreaterThan(dec("0.99")))
}

func TestNewLatticeParamsDegenerateVolatility(t *testing.T) {
	p := NewLatticeParams(decimal.Zero, dec("0.05"), decimal.Zero, dec("1"), 10)
	// u = d = 1 时概率回退到 0.5
	assert.True(t, p.PUp.Equal(half))
	assert.True(t, p.PDown.Equal(half))
}

func TestEvaluateTreeDefer(t *testing.T) {
	t.Run("time value never negative", func(t *testing.T) {
		req := deferRequest(100)
		policy := NewPayoffPolicy(req)
		params := NewLatticeParams(req.Volatility, req.RiskFreeRate, req.DividendYield, req.TimeToExpiry, req.Steps)
		out := EvaluateTree(req, policy, params)

		intrinsic := decimal.Max(req.UnderlyingValue.Sub(req.ExercisePrice), zero)
		assert.True(t, out.RootValue.GreaterThanOrEqual(intrinsic))
	})

	t.Run("single step equals direct expectation", func(t *testing.T) {
		req := deferRequest(1)
		policy := NewPayoffPolicy(req)
		params := NewLatticeParams(req.Volatility, req.RiskFreeRate, req.DividendYield, req.TimeToExpiry, req.Steps)
		out := EvaluateTree(req, policy, params)

		// n=1 时根价值 = max(立即行权, 贴现期望末端收益)
		upPay := policy.ExerciseValue(req.UnderlyingValue.Mul(params.Up))
		downPay := policy.ExerciseValue(req.UnderlyingValue.Mul(params.Down))
		continuation := params.Discount.Mul(params.PUp.Mul(upPay).Add(params.PDown.Mul(downPay)))
		expected := decimal.Max(continuation, policy.ExerciseValue(req.UnderlyingValue))
		assert.True(t, out.RootValue.Sub(expected).Abs().LessThan(dec("0.0001")))
	})

	t.Run("convergence between resolutions", func(t *testing.T) {
		coarse := deferRequest(50)
		fine := deferRequest(200)
		vCoarse := treeValue(coarse)
		vFine := treeValue(fine)
		// 50 步与 200 步的差应小于 2 个单位
		assert.True(t, vCoarse.Sub(vFine).Abs().LessThan(dec("2")),
			"coarse=%s fine=%s", vCoarse, vFine)
	})
}

func TestVolatilityMonotonicity(t *testing.T) {
	low := deferRequest(100)
	low.Volatility = dec("0.15")
	high := deferRequest(100)
	high.Volatility = dec("0.50")

	vLow := treeValue(low)
	vHigh := treeValue(high)
	assert.True(t, vHigh.GreaterThan(vLow), "low=%s high=%s", vLow, vHigh)
}

func TestExpiryMonotonicity(t *testing.T) {
	short := deferRequest(100)
	short.TimeToExpiry = dec("0.5")
	long := deferRequest(100)
	long.TimeToExpiry = dec("3")

	vShort := treeValue(short)
	vLong := treeValue(long)
	assert.True(t, vLong.GreaterThan(vShort), "short=%s long=%s", vShort, vLong)
}

func TestAbandonExerciseBoundary(t *testing.T) {
	req := &ValuationRequest{
		Archetype:       ArchetypeAbandon,
		UnderlyingValue: dec("80"),
		ExercisePrice:   dec("100"),
		Volatility:      dec("0.30"),
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("1"),
		Steps:           60,
	}
	policy := NewPayoffPolicy(req)
	params := NewLatticeParams(req.Volatility, req.RiskFreeRate, req.DividendYield, req.TimeToExpiry, req.Steps)
	out := EvaluateTree(req, policy, params)

	require.NotEmpty(t, out.Boundary)
	prevStep := -1
	for _, point := range out.Boundary {
		assert.True(t, point.ThresholdValue.GreaterThan(zero))
		assert.Less(t, point.TimeStep, req.Steps)
		// 边界必须按时间升序，且每个时间步至多一个点
		assert.Greater(t, point.TimeStep, prevStep)
		prevStep = point.TimeStep
	}
}
