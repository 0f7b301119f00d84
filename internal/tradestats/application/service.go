// Package application 提供交易统计的应用服务与结果信封
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantcalc/internal/tradestats/domain"
)

// Methodology 结果信封携带的方法论标签
const Methodology = "per-trade realized P&L statistics"

// TradeDTO 单笔交易输入
type TradeDTO struct {
	Symbol string  `json:"symbol"`
	PnL    float64 `json:"pnl"`
}

// StatsCommand 交易统计计算命令
type StatsCommand struct {
	Trades []TradeDTO `json:"trades"`
}

// StatsDTO 交易统计结果信封
type StatsDTO struct {
	Methodology   string   `json:"methodology"`
	TotalTrades   int      `json:"total_trades"`
	WinningTrades int      `json:"winning_trades"`
	LosingTrades  int      `json:"losing_trades"`
	WinRate       float64  `json:"win_rate"`
	ProfitFactor  float64  `json:"profit_factor"`
	Expectancy    float64  `json:"expectancy"`
	AverageWin    float64  `json:"average_win"`
	AverageLoss   float64  `json:"average_loss"`
	MaxWinStreak  int      `json:"max_win_streak"`
	MaxLossStreak int      `json:"max_loss_streak"`
	SharpeRatio   float64  `json:"sharpe_ratio"`
	NetProfit     float64  `json:"net_profit"`
	Warnings      []string `json:"warnings"`
	ElapsedMs     int64    `json:"elapsed_ms"`
}

// StatsService 交易统计应用服务
type StatsService struct {
	logger *slog.Logger
}

func NewStatsService(logger *slog.Logger) *StatsService {
	return &StatsService{logger: logger}
}

// Calculate 执行一次交易统计计算
func (s *StatsService) Calculate(ctx context.Context, cmd StatsCommand) (*StatsDTO, error) {
	start := time.Now()

	trades := make([]domain.Trade, 0, len(cmd.Trades))
	for _, t := range cmd.Trades {
		trades = append(trades, domain.Trade{
			Symbol: t.Symbol,
			PnL:    decimal.NewFromFloat(t.PnL),
		})
	}

	result, err := domain.CalculateTradeStats(trades)
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	if result.TotalTrades < 20 {
		warnings = append(warnings, "fewer than 20 trades; statistics have low significance")
	}

	dto := &StatsDTO{
		Methodology:   Methodology,
		TotalTrades:   result.TotalTrades,
		WinningTrades: result.WinningTrades,
		LosingTrades:  result.LosingTrades,
		WinRate:       result.WinRate.InexactFloat64(),
		ProfitFactor:  result.ProfitFactor.InexactFloat64(),
		Expectancy:    result.Expectancy.InexactFloat64(),
		AverageWin:    result.AverageWin.InexactFloat64(),
		AverageLoss:   result.AverageLoss.InexactFloat64(),
		MaxWinStreak:  result.MaxWinStreak,
		MaxLossStreak: result.MaxLossStreak,
		SharpeRatio:   result.SharpeRatio.InexactFloat64(),
		NetProfit:     result.NetProfit.InexactFloat64(),
		Warnings:      warnings,
		ElapsedMs:     time.Since(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "trade statistics calculated",
		"total_trades", dto.TotalTrades,
		"win_rate", dto.WinRate,
		"elapsed_ms", dto.ElapsedMs,
	)
	return dto, nil
}
