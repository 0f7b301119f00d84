package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/quantcalc/internal/realoptions/domain"
)

func TestValueOptionEnvelope(t *testing.T) {
	svc := NewValuationService(slog.Default())

	dto, err := svc.ValueOption(context.Background(), ValueOptionCommand{
		Archetype:       string(domain.ArchetypeDefer),
		UnderlyingValue: 100,
		ExercisePrice:   105,
		Volatility:      0.30,
		RiskFreeRate:    0.05,
		TimeToExpiry:    1,
		Steps:           50,
	})
	require.NoError(t, err)

	// 信封字段齐备：方法论标签、警告列表（可能为空但非 nil）、耗时
	assert.Equal(t, Methodology, dto.Methodology)
	assert.NotNil(t, dto.Warnings)
	assert.GreaterOrEqual(t, dto.ElapsedMs, int64(0))
	assert.Greater(t, dto.OptionValue, 0.0)
}

func TestValueOptionArchetypeParams(t *testing.T) {
	svc := NewValuationService(slog.Default())
	factor := 1.5

	dto, err := svc.ValueOption(context.Background(), ValueOptionCommand{
		Archetype:       string(domain.ArchetypeExpand),
		UnderlyingValue: 100,
		ExercisePrice:   40,
		Volatility:      0.25,
		RiskFreeRate:    0.05,
		TimeToExpiry:    2,
		Steps:           50,
		ExpansionFactor: &factor,
	})
	require.NoError(t, err)
	assert.Greater(t, dto.OptionValue, 0.0)
}

func TestValueOptionValidationPassthrough(t *testing.T) {
	svc := NewValuationService(slog.Default())

	_, err := svc.ValueOption(context.Background(), ValueOptionCommand{
		Archetype:       string(domain.ArchetypeExpand),
		UnderlyingValue: 100,
		ExercisePrice:   40,
		Volatility:      0.25,
		RiskFreeRate:    0.05,
		TimeToExpiry:    2,
		Steps:           50,
		// 缺少 expansion_factor
	})
	require.Error(t, err)

	invalid, ok := err.(*domain.InvalidInputError)
	require.True(t, ok)
	assert.Equal(t, "expansion_factor", invalid.Field)
}
