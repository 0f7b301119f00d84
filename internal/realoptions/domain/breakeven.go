package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// bisectionIterations 二分迭代次数，末区间宽度 ≈ 2/2²⁵，对报告而言已足够精确
	bisectionIterations = 25
	// breakevenMaxSteps 试探估值使用的降档步数
	// 25 次迭代 × 全分辨率树的代价过高，这里是刻意的精度/成本取舍。
	breakevenMaxSteps = 30
)

var (
	bisectionLow  = decimal.RequireFromString("0.001")
	bisectionHigh = decimal.NewFromInt(2)
)

// BreakevenVolatility 求盈亏平衡波动率
// 在 σ ∈ [0.001, 2.0] 上二分，使模型价值等于静态 NPV 下限（target）。
// 不报告收敛失败：25 次迭代后直接取末区间中点。
func BreakevenVolatility(req *ValuationRequest, target decimal.Decimal) decimal.Decimal {
	steps := req.Steps
	if steps > breakevenMaxSteps {
		steps = breakevenMaxSteps
	}

	lo := bisectionLow
	hi := bisectionHigh
	for i := 0; i < bisectionIterations; i++ {
		mid := lo.Add(hi).Mul(half)

		trial := *req
		trial.Volatility = mid
		trial.Steps = steps

		if treeValue(&trial).GreaterThan(target) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo.Add(hi).Mul(half)
}
