package domain

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantcalc/pkg/fixedmath"
)

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
	two  = decimal.NewFromInt(2)
	half = decimal.RequireFromString("0.5")
)

// PayoffPolicy 收益策略接口
// 每种期权原型实现一份：给定节点标的价格的行权价值，以及无期权弹性的静态 NPV。
// 树引擎通过该接口注入收益逻辑，避免在每个网格函数里重复原型分支判断。
type PayoffPolicy interface {
	// ExerciseValue 标的价格为 price 时立即行权的价值
	ExerciseValue(price decimal.Decimal) decimal.Decimal
	// StaticNPV 不含期权弹性的静态净现值
	StaticNPV(spot, strike decimal.Decimal) decimal.Decimal
}

// NewPayoffPolicy 按请求的原型构造对应的收益策略
// Compound 简化为 Defer：不单独构建期权上的期权子树。
func NewPayoffPolicy(req *ValuationRequest) PayoffPolicy {
	switch req.Archetype {
	case ArchetypeExpand:
		return &expandPayoff{strike: req.ExercisePrice, factor: req.ExpansionFactor}
	case ArchetypeAbandon:
		return &abandonPayoff{salvage: req.ExercisePrice}
	case ArchetypeContract:
		return &contractPayoff{savings: req.ExercisePrice, factor: req.ContractionFactor}
	case ArchetypeSwitch:
		return &switchPayoff{strike: req.ExercisePrice, cost: req.SwitchCost, ratio: req.SwitchValueRatio}
	default:
		return &deferPayoff{strike: req.ExercisePrice}
	}
}

// deferPayoff 延迟期权（含 Compound 的简化形态）：美式看涨
type deferPayoff struct {
	strike decimal.Decimal
}

func (p *deferPayoff) ExerciseValue(price decimal.Decimal) decimal.Decimal {
	return decimal.Max(price.Sub(p.strike), zero)
}

func (p *deferPayoff) StaticNPV(spot, strike decimal.Decimal) decimal.Decimal {
	return spot.Sub(strike)
}

// expandPayoff 扩张期权：付出 strike 成本将项目放大 factor 倍
type expandPayoff struct {
	strike decimal.Decimal
	factor decimal.Decimal
}

func (p *expandPayoff) ExerciseValue(price decimal.Decimal) decimal.Decimal {
	expanded := fixedmath.SafeMul(price, p.factor).Sub(p.strike)
	return decimal.Max(expanded, price)
}

func (p *expandPayoff) StaticNPV(spot, strike decimal.Decimal) decimal.Decimal {
	return fixedmath.SafeMul(spot, p.factor).Sub(strike).Sub(spot)
}

// abandonPayoff 放弃期权：strike 充当残值底价
type abandonPayoff struct {
	salvage decimal.Decimal
}

func (p *abandonPayoff) ExerciseValue(price decimal.Decimal) decimal.Decimal {
	return decimal.Max(p.salvage, price)
}

func (p *abandonPayoff) StaticNPV(spot, strike decimal.Decimal) decimal.Decimal {
	return strike.Sub(spot)
}

// contractPayoff 收缩期权：strike 充当缩减实现的节约
// 静态 NPV 固定按 50% 基准计算，与实际收缩系数无关。
type contractPayoff struct {
	savings decimal.Decimal
	factor  decimal.Decimal
}

func (p *contractPayoff) ExerciseValue(price decimal.Decimal) decimal.Decimal {
	contracted := fixedmath.SafeMul(price, p.factor).Add(p.savings)
	return decimal.Max(contracted, price)
}

func (p *contractPayoff) StaticNPV(spot, strike decimal.Decimal) decimal.Decimal {
	return strike.Sub(spot.Mul(half))
}

// switchPayoff 转换期权：按价值比换入替代模式并扣除转换成本
// 静态 NPV 仅用 strike 计算，不引入转换成本与价值比。
type switchPayoff struct {
	strike decimal.Decimal
	cost   decimal.Decimal
	ratio  decimal.Decimal
}

func (p *switchPayoff) ExerciseValue(price decimal.Decimal) decimal.Decimal {
	switched := fixedmath.SafeMul(price, p.ratio).Sub(p.cost)
	return decimal.Max(switched, price)
}

func (p *switchPayoff) StaticNPV(spot, strike decimal.Decimal) decimal.Decimal {
	return spot.Sub(strike)
}
