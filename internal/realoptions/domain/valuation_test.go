package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRealOptionZeroVolatility(t *testing.T) {
	req := &ValuationRequest{
		Archetype:       ArchetypeDefer,
		UnderlyingValue: dec("110"),
		ExercisePrice:   dec("100"),
		Volatility:      decimal.Zero,
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("1"),
		Steps:           50,
	}

	res, err := ValueRealOption(req)
	require.NoError(t, err)

	// 零波动率：价值即立即行权价值 10，希腊字母全零
	assert.True(t, res.OptionValue.Sub(dec("10")).Abs().LessThanOrEqual(one))
	assert.True(t, res.Greeks.Delta.IsZero())
	assert.True(t, res.Greeks.Gamma.IsZero())
	assert.True(t, res.Greeks.Theta.IsZero())
	assert.True(t, res.Greeks.Vega.IsZero())
	assert.True(t, res.BreakevenVolatility.IsZero())
	assert.NotEmpty(t, res.Warnings)
}

func TestValueRealOptionNormalPath(t *testing.T) {
	req := &ValuationRequest{
		Archetype:       ArchetypeDefer,
		UnderlyingValue: dec("100"),
		ExercisePrice:   dec("100"),
		Volatility:      dec("0.20"),
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("1"),
		Steps:           200,
	}

	res, err := ValueRealOption(req)
	require.NoError(t, err)

	// ATM 美式看涨的 delta 应落在 Black-Scholes 近似区间
	assert.True(t, res.Greeks.Delta.GreaterThan(dec("0.45")), "delta=%s", res.Greeks.Delta)
	assert.True(t, res.Greeks.Delta.LessThan(dec("0.80")), "delta=%s", res.Greeks.Delta)

	// vega 为正：波动率上升抬高期权价值
	assert.True(t, res.Greeks.Vega.GreaterThan(zero))

	// 扩展 NPV 与期权溢价的装配关系
	expectedExpanded := res.StaticNPV.Add(decimal.Max(res.OptionValue, zero))
	assert.True(t, res.ExpandedNPV.Equal(expectedExpanded))
	expectedPremium := decimal.Max(res.OptionValue.Sub(decimal.Max(res.StaticNPV, zero)), zero)
	assert.True(t, res.OptionPremium.Equal(expectedPremium))
}

func TestBreakevenVolatilityBelowActual(t *testing.T) {
	req := &ValuationRequest{
		Archetype:       ArchetypeDefer,
		UnderlyingValue: dec("100"),
		ExercisePrice:   dec("100"),
		Volatility:      dec("0.30"),
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("1"),
		Steps:           100,
	}

	res, err := ValueRealOption(req)
	require.NoError(t, err)

	// 平值期权在任何正波动率下都有时间价值，盈亏平衡点必然低于当前波动率
	assert.True(t, res.BreakevenVolatility.LessThan(dec("0.30")),
		"breakeven=%s", res.BreakevenVolatility)
}

func TestValidationErrors(t *testing.T) {
	base := func() *ValuationRequest {
		return &ValuationRequest{
			Archetype:       ArchetypeDefer,
			UnderlyingValue: dec("100"),
			ExercisePrice:   dec("100"),
			Volatility:      dec("0.2"),
			RiskFreeRate:    dec("0.05"),
			TimeToExpiry:    dec("1"),
			Steps:           50,
		}
	}

	cases := []struct {
		name   string
		mutate func(*ValuationRequest)
		field  string
	}{
		{"zero exercise price", func(r *ValuationRequest) { r.ExercisePrice = decimal.Zero }, "exercise_price"},
		{"zero steps", func(r *ValuationRequest) { r.Steps = 0 }, "steps"},
		{"negative volatility", func(r *ValuationRequest) { r.Volatility = dec("-0.1") }, "volatility"},
		{"non-positive underlying", func(r *ValuationRequest) { r.UnderlyingValue = decimal.Zero }, "underlying_value"},
		{"non-positive expiry", func(r *ValuationRequest) { r.TimeToExpiry = decimal.Zero }, "time_to_expiry"},
		{"negative dividend yield", func(r *ValuationRequest) { r.DividendYield = dec("-0.01") }, "dividend_yield"},
		{"expand factor too small", func(r *ValuationRequest) {
			r.Archetype = ArchetypeExpand
			r.ExpansionFactor = dec("0.8")
		}, "expansion_factor"},
		{"contraction factor out of range", func(r *ValuationRequest) {
			r.Archetype = ArchetypeContract
			r.ContractionFactor = dec("1.2")
		}, "contraction_factor"},
		{"switch missing cost", func(r *ValuationRequest) {
			r.Archetype = ArchetypeSwitch
			r.SwitchValueRatio = dec("1.3")
		}, "switch_cost"},
		{"switch missing ratio", func(r *ValuationRequest) {
			r.Archetype = ArchetypeSwitch
			r.SwitchCost = dec("10")
		}, "switch_value_ratio"},
		{"unknown archetype", func(r *ValuationRequest) { r.Archetype = "PERPETUAL" }, "archetype"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(req)

			_, err := ValueRealOption(req)
			require.Error(t, err)

			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestEarlyExerciseWarning(t *testing.T) {
	// 深度价内的放弃期权：立即行权（拿残值）应当最优
	req := &ValuationRequest{
		Archetype:       ArchetypeAbandon,
		UnderlyingValue: dec("20"),
		ExercisePrice:   dec("100"),
		Volatility:      dec("0.10"),
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("0.5"),
		Steps:           50,
	}

	res, err := ValueRealOption(req)
	require.NoError(t, err)
	assert.True(t, res.EarlyExerciseOptimal)
	assert.NotEmpty(t, res.Warnings)
}

func TestCompoundWarning(t *testing.T) {
	req := &ValuationRequest{
		Archetype:       ArchetypeCompound,
		UnderlyingValue: dec("100"),
		ExercisePrice:   dec("105"),
		Volatility:      dec("0.25"),
		RiskFreeRate:    dec("0.05"),
		TimeToExpiry:    dec("1"),
		Steps:           50,
	}

	res, err := ValueRealOption(req)
	require.NoError(t, err)

	found := false
	for _, w := range res.Warnings {
		if w == "compound archetype is priced as a deferral option (no nested sub-lattice)" {
			found = true
		}
	}
	assert.True(t, found)
}
