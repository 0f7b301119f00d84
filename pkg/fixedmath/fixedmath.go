// Package fixedmath - 基于 decimal 的确定性定点数学函数库
// 提供指数、自然对数、平方根、整数幂等运算，全部建立在 decimal 的精确算术之上，
// 不经过二进制浮点数转换，保证任何平台上逐位一致的计算结果。
// 乘法与幂运算提供饱和（封顶）变体：超出上限的值收敛到上限而不是报错，
// 深层价格树上远离均值的路径需要这种"封顶不失败"的语义。
package fixedmath

import (
	"github.com/shopspring/decimal"
)

const (
	// expTerms 指数泰勒级数项数
	expTerms = 30
	// lnIterations 对数牛顿迭代次数
	lnIterations = 20
	// sqrtIterations 平方根牛顿迭代次数
	sqrtIterations = 20
	// workScale 乘法结果保留的小数位数，与 decimal 默认除法精度一致
	workScale = 16
)

var (
	// Cap 可表示的最大值（1e15），饱和运算的上限
	Cap = decimal.New(1, 15)
	// NegCap 可表示的最小值，也是 Ln 对非正输入返回的哨兵值
	NegCap = Cap.Neg()

	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	ten     = decimal.NewFromInt(10)
	half    = decimal.RequireFromString("0.5")
	tenth   = decimal.RequireFromString("0.1")
	hundred = decimal.NewFromInt(100)
	centi   = decimal.RequireFromString("0.01")

	// eConst 固定的自然常数 e，用于对数的粗略区间归约
	eConst = decimal.RequireFromString("2.718281828459045235360287471")
)

// Exp 计算 e^x
// 区间归约：|x|>2 时反复折半，泰勒级数求出归约后的结果，再逐次平方还原。
func Exp(x decimal.Decimal) decimal.Decimal {
	halvings := 0
	for x.Abs().GreaterThan(two) {
		x = x.Mul(half)
		halvings++
	}

	sum := one
	term := one
	for i := 1; i <= expTerms; i++ {
		term = term.Mul(x).Div(decimal.NewFromInt(int64(i)))
		sum = sum.Add(term)
	}

	for ; halvings > 0; halvings-- {
		sum = SafeMul(sum, sum)
	}
	return sum
}

// Ln 计算自然对数 ln(x)
// 先用 e 常数做粗略区间归约得到初值，再对 y ↦ exp(y) − x 做牛顿迭代。
// x ≤ 0 时返回哨兵值 NegCap 而不是错误：调用方只会传入正的价格比率。
func Ln(x decimal.Decimal) decimal.Decimal {
	if x.LessThanOrEqual(zero) {
		return NegCap
	}

	seed := zero
	v := x
	for v.GreaterThan(eConst) {
		v = v.Div(eConst)
		seed = seed.Add(one)
	}
	for v.LessThan(one) {
		v = v.Mul(eConst)
		seed = seed.Sub(one)
	}

	y := seed
	for i := 0; i < lnIterations; i++ {
		ey := Exp(y)
		if ey.IsZero() {
			break
		}
		// 牛顿迭代：y ← y − (exp(y) − x)/exp(y) = y − 1 + x/exp(y)
		y = y.Sub(one).Add(x.Div(ey))
	}
	return y
}

// Sqrt 计算平方根
// 按量级选择初值后做牛顿迭代；非正输入返回 0。
func Sqrt(x decimal.Decimal) decimal.Decimal {
	if x.LessThanOrEqual(zero) {
		return zero
	}

	var guess decimal.Decimal
	switch {
	case x.GreaterThan(hundred):
		guess = x.Div(ten)
	case x.LessThan(centi):
		guess = tenth
	default:
		guess = x.Mul(half)
	}

	for i := 0; i < sqrtIterations; i++ {
		if guess.IsZero() {
			break
		}
		guess = guess.Add(x.Div(guess)).Mul(half)
	}
	return guess
}

// PowInt 快速幂：base^n（n ≥ 0），不做饱和处理
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		n >>= 1
	}
	return result
}

// SafeMul 饱和乘法：结果截断到固定工作精度，超出 ±Cap 时收敛到上下限
func SafeMul(a, b decimal.Decimal) decimal.Decimal {
	p := a.Mul(b).Truncate(workScale)
	if p.GreaterThan(Cap) {
		return Cap
	}
	if p.LessThan(NegCap) {
		return NegCap
	}
	return p
}

// PowCapped 饱和快速幂：base^n（n ≥ 0），每步乘法都经过 SafeMul
func PowCapped(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = SafeMul(result, b)
		}
		b = SafeMul(b, b)
		n >>= 1
	}
	return result
}
