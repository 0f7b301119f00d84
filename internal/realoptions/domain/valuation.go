package domain

import (
	"github.com/shopspring/decimal"
)

// ValueRealOption 实物期权估值编排入口
// 校验一次入参后分两条路径：零波动率直接取立即行权价值并跳过树引擎；
// 正常路径构建网格参数、求树、算希腊字母和盈亏平衡波动率，最后组装结果与警告。
func ValueRealOption(req *ValuationRequest) (*ValuationResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	policy := NewPayoffPolicy(req)
	staticNPV := policy.StaticNPV(req.UnderlyingValue, req.ExercisePrice)
	immediate := policy.ExerciseValue(req.UnderlyingValue)

	result := &ValuationResult{StaticNPV: staticNPV}

	if req.Volatility.IsZero() {
		// 零波动率退化：u = d = 1，树坍缩为单一确定路径，价值即立即行权价值
		result.OptionValue = immediate
		result.Greeks = Greeks{Delta: zero, Gamma: zero, Theta: zero, Vega: zero}
		result.BreakevenVolatility = zero
		result.Warnings = append(result.Warnings,
			"volatility is zero: option value equals immediate exercise value, greeks are zero")
	} else {
		params := NewLatticeParams(req.Volatility, req.RiskFreeRate, req.DividendYield, req.TimeToExpiry, req.Steps)
		outcome := EvaluateTree(req, policy, params)

		result.OptionValue = outcome.RootValue
		result.ExerciseBoundary = outcome.Boundary
		result.Greeks = ComputeGreeks(req, outcome.RootValue)
		result.BreakevenVolatility = BreakevenVolatility(req, decimal.Max(staticNPV, zero))
	}

	result.ExpandedNPV = staticNPV.Add(decimal.Max(result.OptionValue, zero))
	result.OptionPremium = decimal.Max(result.OptionValue.Sub(decimal.Max(staticNPV, zero)), zero)
	result.EarlyExerciseOptimal = immediate.GreaterThanOrEqual(result.OptionValue) && immediate.GreaterThan(zero)

	if result.OptionValue.IsNegative() {
		result.Warnings = append(result.Warnings, "computed option value is negative")
	}
	if result.EarlyExerciseOptimal {
		result.Warnings = append(result.Warnings, "immediate exercise is optimal today")
	}
	if req.Archetype == ArchetypeCompound {
		result.Warnings = append(result.Warnings,
			"compound archetype is priced as a deferral option (no nested sub-lattice)")
	}

	return result, nil
}

// validate 估值入口的一次性校验
// 只抛出 InvalidInputError；此处通过后数值计算阶段不再产生任何错误。
func validate(req *ValuationRequest) error {
	if req.UnderlyingValue.LessThanOrEqual(zero) {
		return &InvalidInputError{Field: "underlying_value", Reason: "must be positive"}
	}
	if req.ExercisePrice.LessThanOrEqual(zero) {
		return &InvalidInputError{Field: "exercise_price", Reason: "must be positive"}
	}
	if req.Volatility.IsNegative() {
		return &InvalidInputError{Field: "volatility", Reason: "must not be negative"}
	}
	if req.TimeToExpiry.LessThanOrEqual(zero) {
		return &InvalidInputError{Field: "time_to_expiry", Reason: "must be positive"}
	}
	if req.Steps < 1 {
		return &InvalidInputError{Field: "steps", Reason: "must be at least 1"}
	}
	if req.DividendYield.IsNegative() {
		return &InvalidInputError{Field: "dividend_yield", Reason: "must not be negative"}
	}

	switch req.Archetype {
	case ArchetypeDefer, ArchetypeAbandon, ArchetypeCompound:
		// 通用参数即可
	case ArchetypeExpand:
		if req.ExpansionFactor.LessThanOrEqual(one) {
			return &InvalidInputError{Field: "expansion_factor", Reason: "must be greater than 1"}
		}
	case ArchetypeContract:
		if req.ContractionFactor.LessThanOrEqual(zero) || req.ContractionFactor.GreaterThanOrEqual(one) {
			return &InvalidInputError{Field: "contraction_factor", Reason: "must be in (0, 1)"}
		}
	case ArchetypeSwitch:
		if req.SwitchCost.LessThanOrEqual(zero) {
			return &InvalidInputError{Field: "switch_cost", Reason: "required and must be positive"}
		}
		if req.SwitchValueRatio.LessThanOrEqual(zero) {
			return &InvalidInputError{Field: "switch_value_ratio", Reason: "required and must be positive"}
		}
	default:
		return &InvalidInputError{Field: "archetype", Reason: "unknown option archetype"}
	}

	return nil
}
