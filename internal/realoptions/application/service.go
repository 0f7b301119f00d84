package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantcalc/internal/realoptions/domain"
)

// Methodology 结果信封携带的方法论标签
const Methodology = "Cox-Ross-Rubinstein binomial lattice (American exercise)"

// ValuationService 实物期权估值应用服务
// 负责命令到领域请求的转换、结果信封的组装（方法论、警告、耗时）
type ValuationService struct {
	logger *slog.Logger
}

func NewValuationService(logger *slog.Logger) *ValuationService {
	return &ValuationService{logger: logger}
}

// ValueOption 执行一次实物期权估值
func (s *ValuationService) ValueOption(ctx context.Context, cmd ValueOptionCommand) (*ValuationDTO, error) {
	start := time.Now()

	req := toDomainRequest(cmd)
	result, err := domain.ValueRealOption(req)
	if err != nil {
		return nil, err
	}

	dto := s.toDTO(result, time.Since(start))
	s.logger.InfoContext(ctx, "real option valued",
		"archetype", cmd.Archetype,
		"steps", cmd.Steps,
		"option_value", dto.OptionValue,
		"elapsed_ms", dto.ElapsedMs,
	)
	return dto, nil
}

func toDomainRequest(cmd ValueOptionCommand) *domain.ValuationRequest {
	req := &domain.ValuationRequest{
		Archetype:       domain.OptionArchetype(cmd.Archetype),
		UnderlyingValue: decimal.NewFromFloat(cmd.UnderlyingValue),
		ExercisePrice:   decimal.NewFromFloat(cmd.ExercisePrice),
		Volatility:      decimal.NewFromFloat(cmd.Volatility),
		RiskFreeRate:    decimal.NewFromFloat(cmd.RiskFreeRate),
		TimeToExpiry:    decimal.NewFromFloat(cmd.TimeToExpiry),
		Steps:           cmd.Steps,
		DividendYield:   decimal.NewFromFloat(cmd.DividendYield),
	}
	if cmd.ExpansionFactor != nil {
		req.ExpansionFactor = decimal.NewFromFloat(*cmd.ExpansionFactor)
	}
	if cmd.ContractionFactor != nil {
		req.ContractionFactor = decimal.NewFromFloat(*cmd.ContractionFactor)
	}
	if cmd.SwitchCost != nil {
		req.SwitchCost = decimal.NewFromFloat(*cmd.SwitchCost)
	}
	if cmd.SwitchValueRatio != nil {
		req.SwitchValueRatio = decimal.NewFromFloat(*cmd.SwitchValueRatio)
	}
	return req
}

func (s *ValuationService) toDTO(r *domain.ValuationResult, elapsed time.Duration) *ValuationDTO {
	boundary := make([]BoundaryPointDTO, 0, len(r.ExerciseBoundary))
	for _, p := range r.ExerciseBoundary {
		boundary = append(boundary, BoundaryPointDTO{
			TimeStep:       p.TimeStep,
			ThresholdValue: p.ThresholdValue.InexactFloat64(),
		})
	}

	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &ValuationDTO{
		Methodology:          Methodology,
		OptionValue:          r.OptionValue.InexactFloat64(),
		StaticNPV:            r.StaticNPV.InexactFloat64(),
		ExpandedNPV:          r.ExpandedNPV.InexactFloat64(),
		OptionPremium:        r.OptionPremium.InexactFloat64(),
		ExerciseBoundary:     boundary,
		Greeks: GreeksDTO{
			Delta: r.Greeks.Delta.InexactFloat64(),
			Gamma: r.Greeks.Gamma.InexactFloat64(),
			Theta: r.Greeks.Theta.InexactFloat64(),
			Vega:  r.Greeks.Vega.InexactFloat64(),
		},
		EarlyExerciseOptimal: r.EarlyExerciseOptimal,
		BreakevenVolatility:  r.BreakevenVolatility.InexactFloat64(),
		Warnings:             warnings,
		ElapsedMs:            elapsed.Milliseconds(),
	}
}
