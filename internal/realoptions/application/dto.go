package application

// ValueOptionCommand 估值命令
// 原型专属参数用指针表达"未提供"，与 0 值区分开
type ValueOptionCommand struct {
	Archetype       string  `json:"archetype"`
	UnderlyingValue float64 `json:"underlying_value"`
	ExercisePrice   float64 `json:"exercise_price"`
	Volatility      float64 `json:"volatility"`
	RiskFreeRate    float64 `json:"risk_free_rate"`
	TimeToExpiry    float64 `json:"time_to_expiry"`
	Steps           int     `json:"steps"`
	DividendYield   float64 `json:"dividend_yield"`

	ExpansionFactor   *float64 `json:"expansion_factor"`
	ContractionFactor *float64 `json:"contraction_factor"`
	SwitchCost        *float64 `json:"switch_cost"`
	SwitchValueRatio  *float64 `json:"switch_value_ratio"`
}

// GreeksDTO 敏感度指标
type GreeksDTO struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// BoundaryPointDTO 行权边界点
type BoundaryPointDTO struct {
	TimeStep       int     `json:"time_step"`
	ThresholdValue float64 `json:"threshold_value"`
}

// ValuationDTO 估值结果信封
// 除领域结果外附带方法论标签、警告列表与耗时元数据
type ValuationDTO struct {
	Methodology          string             `json:"methodology"`
	OptionValue          float64            `json:"option_value"`
	StaticNPV            float64            `json:"static_npv"`
	ExpandedNPV          float64            `json:"expanded_npv"`
	OptionPremium        float64            `json:"option_premium"`
	ExerciseBoundary     []BoundaryPointDTO `json:"exercise_boundary"`
	Greeks               GreeksDTO          `json:"greeks"`
	EarlyExerciseOptimal bool               `json:"early_exercise_optimal"`
	BreakevenVolatility  float64            `json:"breakeven_volatility"`
	Warnings             []string           `json:"warnings"`
	ElapsedMs            int64              `json:"elapsed_ms"`
}
