// Package domain 实物期权估值服务的领域模型
// 核心是 CRR 二叉树（Cox-Ross-Rubinstein）美式行权估值引擎：
// 定点数学内核 + 六种期权原型的收益策略 + 向后归纳 + 行权边界追踪 +
// 碰撞重估希腊字母 + 盈亏平衡波动率二分求解。
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OptionArchetype 实物期权原型
type OptionArchetype string

const (
	// ArchetypeDefer 延迟期权：保留未来再投资的权利，美式看涨语义
	ArchetypeDefer OptionArchetype = "DEFER"
	// ArchetypeExpand 扩张期权：以一定成本按倍数扩大项目规模
	ArchetypeExpand OptionArchetype = "EXPAND"
	// ArchetypeAbandon 放弃期权：以残值底价退出项目，美式看跌语义
	ArchetypeAbandon OptionArchetype = "ABANDON"
	// ArchetypeContract 收缩期权：缩减规模并实现节约
	ArchetypeContract OptionArchetype = "CONTRACT"
	// ArchetypeSwitch 转换期权：付出转换成本后切换到替代经营模式
	ArchetypeSwitch OptionArchetype = "SWITCH"
	// ArchetypeCompound 复合期权：简化为延迟期权处理（不建子树）
	ArchetypeCompound OptionArchetype = "COMPOUND"
)

// ValuationRequest 估值请求
// 除通用字段外，各原型要求各自的专属参数；与所选原型无关的参数被忽略。
type ValuationRequest struct {
	Archetype       OptionArchetype
	UnderlyingValue decimal.Decimal // 标的现值，必须 > 0
	ExercisePrice   decimal.Decimal // 行权价/残值/节约额，必须 > 0
	Volatility      decimal.Decimal // 波动率，必须 ≥ 0
	RiskFreeRate    decimal.Decimal // 无风险利率
	TimeToExpiry    decimal.Decimal // 到期时间（年），必须 > 0
	Steps           int             // 树的步数，必须 ≥ 1
	DividendYield   decimal.Decimal // 股息率（可选），必须 ≥ 0

	ExpansionFactor   decimal.Decimal // 扩张倍数（Expand 必填，> 1）
	ContractionFactor decimal.Decimal // 收缩系数（Contract 必填，∈(0,1)）
	SwitchCost        decimal.Decimal // 转换成本（Switch 必填，> 0）
	SwitchValueRatio  decimal.Decimal // 转换价值比（Switch 必填，> 0）
}

// ExerciseBoundaryPoint 行权边界点
// 某个时间步上向后归纳首次判定立即行权最优的最内侧节点价格。
type ExerciseBoundaryPoint struct {
	TimeStep       int             `json:"time_step"`
	ThresholdValue decimal.Decimal `json:"threshold_value"`
}

// Greeks 敏感度指标，全部由碰撞重估（bump-and-reprice）差分得到
type Greeks struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Theta decimal.Decimal `json:"theta"`
	Vega  decimal.Decimal `json:"vega"`
}

// ValuationResult 估值结果
// 所有实体都在一次估值调用内创建、计算并消费，调用结束后不保留任何状态。
type ValuationResult struct {
	OptionValue          decimal.Decimal         `json:"option_value"`
	StaticNPV            decimal.Decimal         `json:"static_npv"`
	ExpandedNPV          decimal.Decimal         `json:"expanded_npv"`
	OptionPremium        decimal.Decimal         `json:"option_premium"`
	ExerciseBoundary     []ExerciseBoundaryPoint `json:"exercise_boundary"`
	Greeks               Greeks                  `json:"greeks"`
	EarlyExerciseOptimal bool                    `json:"early_exercise_optimal"`
	BreakevenVolatility  decimal.Decimal         `json:"breakeven_volatility"`
	Warnings             []string                `json:"warnings,omitempty"`
}

// InvalidInputError 入参校验错误，唯一会向调用方抛出的错误类型
// 校验只在估值入口做一次；数值计算过程中的边界情况一律降级为警告而不是错误。
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}
