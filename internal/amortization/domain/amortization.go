// Package domain 提供等额本息贷款摊销计划计算
package domain

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantcalc/pkg/fixedmath"
)

var (
	one            = decimal.NewFromInt(1)
	monthsPerYear  = decimal.NewFromInt(12)
	moneyPrecision = int32(2)
)

// LoanInput 贷款输入
type LoanInput struct {
	Principal  decimal.Decimal `json:"principal"`   // 本金
	AnnualRate decimal.Decimal `json:"annual_rate"` // 年化利率，如 0.06
	Months     int             `json:"months"`      // 期数（月）
}

// ScheduleRow 单期还款明细
type ScheduleRow struct {
	Period    int             `json:"period"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"` // 本期还款后剩余本金
}

// Schedule 摊销计划
type Schedule struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Rows           []ScheduleRow   `json:"rows"`
}

// InvalidInputError 入参校验错误
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input \"" + e.Field + "\": " + e.Reason
}

// BuildSchedule 计算等额本息摊销计划
// 月供 = P * r * (1+r)^n / ((1+r)^n - 1)，r 为月利率；零利率退化为本金均摊。
// 末期支付按剩余本金收口，吸收舍入误差。
func BuildSchedule(input LoanInput) (*Schedule, error) {
	if !input.Principal.IsPositive() {
		return nil, &InvalidInputError{Field: "principal", Reason: "must be positive"}
	}
	if input.AnnualRate.IsNegative() {
		return nil, &InvalidInputError{Field: "annual_rate", Reason: "must not be negative"}
	}
	if input.Months < 1 {
		return nil, &InvalidInputError{Field: "months", Reason: "must be at least 1"}
	}

	monthlyRate := input.AnnualRate.DivRound(monthsPerYear, 16)

	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		payment = input.Principal.DivRound(decimal.NewFromInt(int64(input.Months)), moneyPrecision)
	} else {
		// (1+r)^n 通过平方求幂计算，保持全程 decimal
		growth := fixedmath.PowInt(one.Add(monthlyRate), input.Months)
		numerator := input.Principal.Mul(monthlyRate).Mul(growth)
		denominator := growth.Sub(one)
		payment = numerator.DivRound(denominator, moneyPrecision)
	}

	rows := make([]ScheduleRow, 0, input.Months)
	balance := input.Principal
	var totalInterest decimal.Decimal

	for period := 1; period <= input.Months; period++ {
		interest := balance.Mul(monthlyRate).Round(moneyPrecision)
		principalPart := payment.Sub(interest)
		rowPayment := payment

		if period == input.Months || principalPart.GreaterThan(balance) {
			// 末期收口：本金部分等于剩余本金
			principalPart = balance
			rowPayment = principalPart.Add(interest)
		}

		balance = balance.Sub(principalPart)
		totalInterest = totalInterest.Add(interest)

		rows = append(rows, ScheduleRow{
			Period:    period,
			Payment:   rowPayment,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})

		if balance.IsZero() {
			break
		}
	}

	totalPayment := input.Principal.Add(totalInterest)

	return &Schedule{
		MonthlyPayment: payment,
		TotalPayment:   totalPayment,
		TotalInterest:  totalInterest,
		Rows:           rows,
	}, nil
}
