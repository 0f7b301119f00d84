package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

var (
	// spotBumpRatio 标的价格碰撞幅度：1%
	spotBumpRatio = decimal.RequireFromString("0.01")
	// timeBump 时间碰撞幅度：0.01 年
	timeBump = decimal.RequireFromString("0.01")
	// volBump 波动率碰撞幅度
	volBump = decimal.RequireFromString("0.01")
	// volFloor 波动率下碰的下限，保持试探波动率为正
	volFloor = decimal.RequireFromString("0.001")
)

// ComputeGreeks 碰撞重估法计算希腊字母
// 网格价值对输入总体上是分段非光滑的，闭式求导并不稳健，
// 因此四个指标一律通过扰动单个输入后完整重估再做有限差分。
// 各次碰撞重估互不依赖，放入同一批 goroutine 并行执行。
func ComputeGreeks(req *ValuationRequest, baseValue decimal.Decimal) Greeks {
	spot := req.UnderlyingValue
	bump := spot.Mul(spotBumpRatio)

	spotUp := *req
	spotUp.UnderlyingValue = spot.Add(bump)
	spotDown := *req
	spotDown.UnderlyingValue = spot.Sub(bump)

	volUpValue := req.Volatility.Add(volBump)
	volDownValue := decimal.Max(req.Volatility.Sub(volBump), volFloor)
	volUp := *req
	volUp.Volatility = volUpValue
	volDown := *req
	volDown.Volatility = volDownValue

	withTheta := req.TimeToExpiry.GreaterThan(timeBump)
	shorter := *req
	if withTheta {
		shorter.TimeToExpiry = req.TimeToExpiry.Sub(timeBump)
	}

	var vSpotUp, vSpotDown, vVolUp, vVolDown, vShorter decimal.Decimal
	var wg sync.WaitGroup
	reprice := func(target *decimal.Decimal, bumped *ValuationRequest) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*target = treeValue(bumped)
		}()
	}
	reprice(&vSpotUp, &spotUp)
	reprice(&vSpotDown, &spotDown)
	reprice(&vVolUp, &volUp)
	reprice(&vVolDown, &volDown)
	if withTheta {
		reprice(&vShorter, &shorter)
	}
	wg.Wait()

	var g Greeks

	// delta = (V(S+ΔS) − V(S−ΔS)) / 2ΔS
	g.Delta = vSpotUp.Sub(vSpotDown).Div(bump.Mul(two))

	// gamma = (V(S+ΔS) − 2V(S) + V(S−ΔS)) / ΔS²
	g.Gamma = vSpotUp.Sub(baseValue.Mul(two)).Add(vSpotDown).Div(bump.Mul(bump))

	// theta = (V(T−Δt) − V(T)) / Δt，T ≤ Δt 时记 0
	if withTheta {
		g.Theta = vShorter.Sub(baseValue).Div(timeBump)
	} else {
		g.Theta = zero
	}

	// vega 用实际波动率跨度做分母：下碰触及下限时名义跨度 2Δσ 不再成立
	span := volUpValue.Sub(volDownValue)
	g.Vega = vVolUp.Sub(vVolDown).Div(span)

	return g
}
