package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pnl(v float64) Trade {
	return Trade{Symbol: "BTCUSDT", PnL: decimal.NewFromFloat(v)}
}

func TestCalculateTradeStats_Basic(t *testing.T) {
	trades := []Trade{pnl(100), pnl(-50), pnl(200), pnl(-50), pnl(100)}

	result, err := CalculateTradeStats(trades)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalTrades)
	assert.Equal(t, 3, result.WinningTrades)
	assert.Equal(t, 2, result.LosingTrades)
	// 胜率 3/5
	assert.InDelta(t, 0.6, result.WinRate.InexactFloat64(), 1e-9)
	// 盈利因子 400/100 = 4
	assert.InDelta(t, 4.0, result.ProfitFactor.InexactFloat64(), 1e-9)
	// 期望 300/5 = 60
	assert.InDelta(t, 60.0, result.Expectancy.InexactFloat64(), 1e-9)
	assert.InDelta(t, 300.0, result.NetProfit.InexactFloat64(), 1e-9)
}

func TestCalculateTradeStats_Streaks(t *testing.T) {
	// 连胜 2，连亏 3，持平中断连胜
	trades := []Trade{pnl(1), pnl(1), pnl(-1), pnl(-1), pnl(-1), pnl(1), pnl(0), pnl(1)}

	result, err := CalculateTradeStats(trades)
	require.NoError(t, err)

	assert.Equal(t, 2, result.MaxWinStreak)
	assert.Equal(t, 3, result.MaxLossStreak)
}

func TestCalculateTradeStats_AllWinners(t *testing.T) {
	trades := []Trade{pnl(10), pnl(20), pnl(30)}

	result, err := CalculateTradeStats(trades)
	require.NoError(t, err)

	// 无亏损时盈利因子退化为总盈利
	assert.InDelta(t, 60.0, result.ProfitFactor.InexactFloat64(), 1e-9)
	assert.True(t, result.AverageLoss.IsZero())
	assert.Equal(t, 0, result.MaxLossStreak)
}

func TestCalculateTradeStats_AverageWinLoss(t *testing.T) {
	trades := []Trade{pnl(30), pnl(10), pnl(-20), pnl(-10)}

	result, err := CalculateTradeStats(trades)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, result.AverageWin.InexactFloat64(), 1e-9)
	// 平均亏损以正数表示
	assert.InDelta(t, 15.0, result.AverageLoss.InexactFloat64(), 1e-9)
}

func TestCalculateTradeStats_Empty(t *testing.T) {
	_, err := CalculateTradeStats(nil)
	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "trades", invalid.Field)
}
