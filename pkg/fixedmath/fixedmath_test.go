package fixedmath

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// assertClose 校验 decimal 结果与期望值的偏差在容差之内
func assertClose(t *testing.T, expected float64, actual decimal.Decimal, tolerance float64) {
	t.Helper()
	diff := actual.Sub(decimal.NewFromFloat(expected)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(tolerance)),
		"expected %v, got %s", expected, actual.String())
}

func TestExp(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		assertClose(t, 1.0, Exp(decimal.Zero), 1e-10)
	})

	t.Run("small args", func(t *testing.T) {
		assertClose(t, 2.718281828459045, Exp(decimal.NewFromInt(1)), 1e-9)
		assertClose(t, 1.1051709180756477, Exp(decimal.RequireFromString("0.1")), 1e-10)
	})

	t.Run("large args via range reduction", func(t *testing.T) {
		assertClose(t, 148.4131591025766, Exp(decimal.NewFromInt(5)), 1e-6)
		assertClose(t, 22026.465794806718, Exp(decimal.NewFromInt(10)), 1e-4)
	})

	t.Run("negative args", func(t *testing.T) {
		assertClose(t, 0.36787944117144233, Exp(decimal.NewFromInt(-1)), 1e-9)
		assertClose(t, 0.006737946999085467, Exp(decimal.NewFromInt(-5)), 1e-9)
	})
}

func TestLn(t *testing.T) {
	t.Run("reference values", func(t *testing.T) {
		assertClose(t, 0.0, Ln(decimal.NewFromInt(1)), 1e-9)
		assertClose(t, 1.0, Ln(eConst), 1e-9)
		assertClose(t, 4.605170185988091, Ln(decimal.NewFromInt(100)), 1e-8)
		assertClose(t, -2.3025850929940457, Ln(decimal.RequireFromString("0.1")), 1e-8)
	})

	t.Run("exp ln round trip", func(t *testing.T) {
		for _, v := range []string{"0.25", "1.5", "3.7", "42"} {
			x := decimal.RequireFromString(v)
			roundTrip := Exp(Ln(x))
			diff := roundTrip.Sub(x).Abs()
			assert.True(t, diff.LessThan(decimal.RequireFromString("0.0001")),
				"exp(ln(%s)) = %s", v, roundTrip.String())
		}
	})

	t.Run("non-positive returns sentinel", func(t *testing.T) {
		assert.True(t, Ln(decimal.Zero).Equal(NegCap))
		assert.True(t, Ln(decimal.NewFromInt(-3)).Equal(NegCap))
	})
}

func TestSqrt(t *testing.T) {
	t.Run("across magnitudes", func(t *testing.T) {
		assertClose(t, 2.0, Sqrt(decimal.NewFromInt(4)), 1e-10)
		assertClose(t, 30.0, Sqrt(decimal.NewFromInt(900)), 1e-8)
		assertClose(t, 0.05, Sqrt(decimal.RequireFromString("0.0025")), 1e-10)
		assertClose(t, 1.4142135623730951, Sqrt(decimal.NewFromInt(2)), 1e-10)
	})

	t.Run("non-positive returns zero", func(t *testing.T) {
		assert.True(t, Sqrt(decimal.Zero).IsZero())
		assert.True(t, Sqrt(decimal.NewFromInt(-9)).IsZero())
	})
}

func TestPowInt(t *testing.T) {
	assert.True(t, PowInt(decimal.NewFromInt(2), 10).Equal(decimal.NewFromInt(1024)))
	assert.True(t, PowInt(decimal.NewFromInt(7), 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, PowInt(decimal.NewFromInt(3), 1).Equal(decimal.NewFromInt(3)))
}

func TestSafeMul(t *testing.T) {
	t.Run("plain product", func(t *testing.T) {
		p := SafeMul(decimal.NewFromInt(6), decimal.NewFromInt(7))
		assert.True(t, p.Equal(decimal.NewFromInt(42)))
	})

	t.Run("saturates at cap", func(t *testing.T) {
		p := SafeMul(decimal.New(1, 10), decimal.New(1, 10))
		assert.True(t, p.Equal(Cap))
	})

	t.Run("saturates at negative cap", func(t *testing.T) {
		p := SafeMul(decimal.New(-1, 10), decimal.New(1, 10))
		assert.True(t, p.Equal(NegCap))
	})
}

func TestPowCapped(t *testing.T) {
	t.Run("matches plain pow below cap", func(t *testing.T) {
		assert.True(t, PowCapped(decimal.NewFromInt(2), 10).Equal(decimal.NewFromInt(1024)))
	})

	t.Run("deep power saturates", func(t *testing.T) {
		// 1.5^200 远超 1e15，应收敛到 Cap
		p := PowCapped(decimal.RequireFromString("1.5"), 200)
		assert.True(t, p.Equal(Cap))
	})
}
