// Package application 提供贷款摊销的应用服务与结果信封
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantcalc/internal/amortization/domain"
)

// Methodology 结果信封携带的方法论标签
const Methodology = "level-payment (annuity) amortization"

// ScheduleCommand 摊销计划计算命令
type ScheduleCommand struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Months     int     `json:"months"`
}

// ScheduleRowDTO 单期还款明细
type ScheduleRowDTO struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// ScheduleDTO 摊销计划结果信封
type ScheduleDTO struct {
	Methodology    string           `json:"methodology"`
	MonthlyPayment float64          `json:"monthly_payment"`
	TotalPayment   float64          `json:"total_payment"`
	TotalInterest  float64          `json:"total_interest"`
	Rows           []ScheduleRowDTO `json:"rows"`
	Warnings       []string         `json:"warnings"`
	ElapsedMs      int64            `json:"elapsed_ms"`
}

// ScheduleService 贷款摊销应用服务
type ScheduleService struct {
	logger *slog.Logger
}

func NewScheduleService(logger *slog.Logger) *ScheduleService {
	return &ScheduleService{logger: logger}
}

// Build 计算一张摊销计划表
func (s *ScheduleService) Build(ctx context.Context, cmd ScheduleCommand) (*ScheduleDTO, error) {
	start := time.Now()

	schedule, err := domain.BuildSchedule(domain.LoanInput{
		Principal:  decimal.NewFromFloat(cmd.Principal),
		AnnualRate: decimal.NewFromFloat(cmd.AnnualRate),
		Months:     cmd.Months,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]ScheduleRowDTO, 0, len(schedule.Rows))
	for _, row := range schedule.Rows {
		rows = append(rows, ScheduleRowDTO{
			Period:    row.Period,
			Payment:   row.Payment.InexactFloat64(),
			Interest:  row.Interest.InexactFloat64(),
			Principal: row.Principal.InexactFloat64(),
			Balance:   row.Balance.InexactFloat64(),
		})
	}

	dto := &ScheduleDTO{
		Methodology:    Methodology,
		MonthlyPayment: schedule.MonthlyPayment.InexactFloat64(),
		TotalPayment:   schedule.TotalPayment.InexactFloat64(),
		TotalInterest:  schedule.TotalInterest.InexactFloat64(),
		Rows:           rows,
		Warnings:       []string{},
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "amortization schedule built",
		"months", cmd.Months,
		"monthly_payment", dto.MonthlyPayment,
		"elapsed_ms", dto.ElapsedMs,
	)
	return dto, nil
}
