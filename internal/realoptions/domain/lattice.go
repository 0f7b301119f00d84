package domain

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantcalc/pkg/fixedmath"
)

// LatticeParams 单步网格参数
// 由波动率、利率、股息率、到期时间和步数推导出的上行/下行乘数、
// 风险中性概率和单步贴现因子。
// 调用方负责保证 steps ≥ 1 且 T > 0，进一步的校验由估值入口统一完成。
type LatticeParams struct {
	Dt       decimal.Decimal
	Up       decimal.Decimal
	Down     decimal.Decimal
	PUp      decimal.Decimal
	PDown    decimal.Decimal
	Discount decimal.Decimal
}

// NewLatticeParams 构造 CRR 网格参数
// u = exp(σ·sqrt(dt))，d = 1/u，p_up = (exp((r−q)·dt) − d)/(u − d)。
// u = d 的退化情形（零波动率）回退到 0.5。
func NewLatticeParams(volatility, riskFreeRate, dividendYield, timeToExpiry decimal.Decimal, steps int) LatticeParams {
	dt := timeToExpiry.Div(decimal.NewFromInt(int64(steps)))
	up := fixedmath.Exp(volatility.Mul(fixedmath.Sqrt(dt)))
	down := one.Div(up)

	var pUp decimal.Decimal
	if up.Equal(down) {
		pUp = half
	} else {
		growth := fixedmath.Exp(riskFreeRate.Sub(dividendYield).Mul(dt))
		pUp = growth.Sub(down).Div(up.Sub(down))
	}

	return LatticeParams{
		Dt:       dt,
		Up:       up,
		Down:     down,
		PUp:      pUp,
		PDown:    one.Sub(pUp),
		Discount: fixedmath.Exp(riskFreeRate.Neg().Mul(dt)),
	}
}

// TreeOutcome 一次树求值的结果：根节点价值与按时间排序的行权边界
type TreeOutcome struct {
	RootValue decimal.Decimal
	Boundary  []ExerciseBoundaryPoint
}

// nodePrice 按净指数（上行数 − 下行数）代数推导节点价格
// 绝不沿路径逐步连乘：净幂既约束了数值误差，也避免了深树上的溢出。
func nodePrice(spot decimal.Decimal, params LatticeParams, ups, downs int) decimal.Decimal {
	net := ups - downs
	if net >= 0 {
		return fixedmath.SafeMul(spot, fixedmath.PowCapped(params.Up, net))
	}
	return fixedmath.SafeMul(spot, fixedmath.PowCapped(params.Down, -net))
}

// EvaluateTree 构建二叉树并做美式行权的向后归纳
// 末端收益取自收益策略；每个内部节点比较持有价值与行权价值取大者。
// 每个时间步只记录首个（最内侧）行权更优的节点作为该步的边界阈值。
// 对合法的网格参数该函数不会失败；零波动率在上游被拦截。
func EvaluateTree(req *ValuationRequest, policy PayoffPolicy, params LatticeParams) *TreeOutcome {
	n := req.Steps

	values := make([]decimal.Decimal, n+1)
	for i := 0; i <= n; i++ {
		values[i] = policy.ExerciseValue(nodePrice(req.UnderlyingValue, params, i, n-i))
	}

	var boundary []ExerciseBoundaryPoint
	for step := n - 1; step >= 0; step-- {
		recorded := false
		for i := 0; i <= step; i++ {
			continuation := params.Discount.Mul(
				params.PUp.Mul(values[i+1]).Add(params.PDown.Mul(values[i])))

			price := nodePrice(req.UnderlyingValue, params, i, step-i)
			exercise := policy.ExerciseValue(price)

			if exercise.GreaterThan(continuation) {
				values[i] = exercise
				if !recorded {
					boundary = append(boundary, ExerciseBoundaryPoint{
						TimeStep:       step,
						ThresholdValue: price,
					})
					recorded = true
				}
			} else {
				values[i] = continuation
			}
		}
	}

	// 归纳自后向前，边界翻转成时间升序
	for l, r := 0, len(boundary)-1; l < r; l, r = l+1, r-1 {
		boundary[l], boundary[r] = boundary[r], boundary[l]
	}

	return &TreeOutcome{RootValue: values[0], Boundary: boundary}
}

// treeValue 以当前请求参数完整求一次树的根节点价值
// 希腊字母引擎与盈亏平衡求解器通过它做碰撞重估。
func treeValue(req *ValuationRequest) decimal.Decimal {
	policy := NewPayoffPolicy(req)
	params := NewLatticeParams(req.Volatility, req.RiskFreeRate, req.DividendYield, req.TimeToExpiry, req.Steps)
	return EvaluateTree(req, policy, params).RootValue
}
