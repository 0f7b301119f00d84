package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPayoffPolicies(t *testing.T) {
	spot := dec("100")
	strike := dec("80")

	t.Run("defer", func(t *testing.T) {
		p := NewPayoffPolicy(&ValuationRequest{Archetype: ArchetypeDefer, ExercisePrice: strike})
		// 价内：S − K
		assert.True(t, p.ExerciseValue(spot).Equal(dec("20")))
		// 价外：0
		assert.True(t, p.ExerciseValue(dec("50")).IsZero())
		assert.True(t, p.StaticNPV(spot, strike).Equal(dec("20")))
	})

	t.Run("compound behaves as defer", func(t *testing.T) {
		p := NewPayoffPolicy(&ValuationRequest{Archetype: ArchetypeCompound, ExercisePrice: strike})
		assert.True(t, p.ExerciseValue(spot).Equal(dec("20")))
	})

	t.Run("expand", func(t *testing.T) {
		p := NewPayoffPolicy(&ValuationRequest{
			Archetype:       ArchetypeExpand,
			ExercisePrice:   dec("30"),
			ExpansionFactor: dec("1.5"),
		})
		// max(100·1.5 − 30, 100) = 120
		assert.True(t, p.ExerciseValue(spot).Equal(dec("120")))
		// 扩张不划算时保留现状价值
		assert.True(t, p.ExerciseValue(dec("10")).Equal(dec("10")))
		// static = S·f − K − S = 150 − 30 − 100
		assert.True(t, p.StaticNPV(spot, dec("30")).Equal(dec("20")))
	})

	t.Run("abandon", func(t *testing.T) {
		p := NewPayoffPolicy(&ValuationRequest{Archetype: ArchetypeAbandon, ExercisePrice: dec("90")})
		// 残值底价托底
		assert.True(t, p.ExerciseValue(dec("60")).Equal(dec("90")))
		assert.True(t, p.ExerciseValue(dec("120")).Equal(dec("120")))
		assert.True(t, p.StaticNPV(spot, dec("90")).Equal(dec("-10")))
	})

	t.Run("contract", func(t *testing.T) {
		p := NewPayoffPolicy(&ValuationRequest{
			Archetype:         ArchetypeContract,
			ExercisePrice:     dec("40"),
			ContractionFactor: dec("0.5"),
		})
		// max(100·0.5 + 40, 100) = 100，收缩不占优
		assert.True(t, p.ExerciseValue(spot).Equal(dec("100")))
		// max(60·0.5 + 40, 60) = 70
		assert.True(t, p.ExerciseValue(dec("60")).Equal(dec("70")))
		// 固定 50% 基准：K − S·0.5
		assert.True(t, p.StaticNPV(spot, dec("40")).Equal(dec("-10")))
	})

	t.Run("switch", func(t *testing.T) {
		p := NewPayoffPolicy(&ValuationRequest{
			Archetype:        ArchetypeSwitch,
			ExercisePrice:    dec("100"),
			SwitchCost:       dec("20"),
			SwitchValueRatio: dec("1.4"),
		})
		// max(100·1.4 − 20, 100) = 120
		assert.True(t, p.ExerciseValue(spot).Equal(dec("120")))
		// static 不含转换参数：S − K
		assert.True(t, p.StaticNPV(spot, dec("100")).IsZero())
	})
}

func TestPayoffSaturatesExtremePrices(t *testing.T) {
	p := NewPayoffPolicy(&ValuationRequest{
		Archetype:       ArchetypeExpand,
		ExercisePrice:   dec("30"),
		ExpansionFactor: dec("3"),
	})
	// 深树远端的极端价格必须被封顶而不是溢出
	extreme := decimal.New(9, 14) // 9e14
	v := p.ExerciseValue(extreme)
	assert.True(t, v.LessThanOrEqual(decimal.New(1, 15)))
	assert.True(t, v.GreaterThan(decimal.Zero))
}
