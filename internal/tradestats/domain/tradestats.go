// Package domain 提供交易日志统计指标计算
package domain

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const tradingDaysPerYear = 252

// Trade 单笔已平仓交易
type Trade struct {
	Symbol string          `json:"symbol"`
	PnL    decimal.Decimal `json:"pnl"` // 已实现盈亏（货币单位）
}

// StatsResult 交易统计结果
type StatsResult struct {
	TotalTrades     int             `json:"total_trades"`
	WinningTrades   int             `json:"winning_trades"`
	LosingTrades    int             `json:"losing_trades"`
	WinRate         decimal.Decimal `json:"win_rate"`          // 胜率 ∈ [0,1]，盈亏为零的交易不计入分子
	ProfitFactor    decimal.Decimal `json:"profit_factor"`     // 总盈利 / 总亏损绝对值；无亏损时为总盈利
	Expectancy      decimal.Decimal `json:"expectancy"`        // 每笔期望盈亏
	AverageWin      decimal.Decimal `json:"average_win"`
	AverageLoss     decimal.Decimal `json:"average_loss"`      // 以正数表示
	MaxWinStreak    int             `json:"max_win_streak"`    // 最大连胜笔数
	MaxLossStreak   int             `json:"max_loss_streak"`   // 最大连亏笔数
	SharpeRatio     decimal.Decimal `json:"sharpe_ratio"`      // 按笔收益的年化 Sharpe
	NetProfit       decimal.Decimal `json:"net_profit"`
}

// InvalidInputError 入参校验错误
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input \"" + e.Field + "\": " + e.Reason
}

// CalculateTradeStats 对按时间顺序排列的交易序列计算统计指标
func CalculateTradeStats(trades []Trade) (*StatsResult, error) {
	if len(trades) == 0 {
		return nil, &InvalidInputError{Field: "trades", Reason: "must not be empty"}
	}

	var (
		grossProfit, grossLoss, net decimal.Decimal
		wins, losses                int
		winStreak, lossStreak       int
		maxWinStreak, maxLossStreak int
	)
	pnls := make([]float64, 0, len(trades))

	for _, trade := range trades {
		pnls = append(pnls, trade.PnL.InexactFloat64())
		net = net.Add(trade.PnL)

		switch {
		case trade.PnL.IsPositive():
			wins++
			grossProfit = grossProfit.Add(trade.PnL)
			winStreak++
			lossStreak = 0
		case trade.PnL.IsNegative():
			losses++
			grossLoss = grossLoss.Add(trade.PnL.Abs())
			lossStreak++
			winStreak = 0
		default:
			// 持平的交易中断连胜连亏
			winStreak = 0
			lossStreak = 0
		}
		maxWinStreak = max(maxWinStreak, winStreak)
		maxLossStreak = max(maxLossStreak, lossStreak)
	}

	total := decimal.NewFromInt(int64(len(trades)))
	winRate := decimal.NewFromInt(int64(wins)).Div(total)

	profitFactor := grossProfit
	if grossLoss.IsPositive() {
		profitFactor = grossProfit.DivRound(grossLoss, 8)
	}

	expectancy := net.DivRound(total, 8)

	averageWin := decimal.Zero
	if wins > 0 {
		averageWin = grossProfit.DivRound(decimal.NewFromInt(int64(wins)), 8)
	}
	averageLoss := decimal.Zero
	if losses > 0 {
		averageLoss = grossLoss.DivRound(decimal.NewFromInt(int64(losses)), 8)
	}

	var sharpe float64
	if len(pnls) >= 2 {
		mean, _ := stats.Mean(stats.Float64Data(pnls))
		stdev, _ := stats.StandardDeviationSample(stats.Float64Data(pnls))
		if stdev > 0 {
			sharpe = mean / stdev * math.Sqrt(tradingDaysPerYear)
		}
	}

	return &StatsResult{
		TotalTrades:   len(trades),
		WinningTrades: wins,
		LosingTrades:  losses,
		WinRate:       winRate.Round(8),
		ProfitFactor:  profitFactor,
		Expectancy:    expectancy,
		AverageWin:    averageWin,
		AverageLoss:   averageLoss,
		MaxWinStreak:  maxWinStreak,
		MaxLossStreak: maxLossStreak,
		SharpeRatio:   decimal.NewFromFloat(sharpe).Round(8),
		NetProfit:     net,
	}, nil
}
