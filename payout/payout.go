// Package payout values sold-back leave days for the financial admin views.
// Uses decimal arithmetic to avoid floating-point errors in money amounts.
package payout

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lexgate/leave-engine/leave"
)

// ErrNegativeSalary is returned when a negative monthly salary is supplied.
var ErrNegativeSalary = errors.New("monthly salary must not be negative")

// DailyRate returns the compensation value of one leave day: monthly salary
// divided by the classification's entitlement divisor (30 for consecutive-day
// employees, 20 for business-day employees).
func DailyRate(monthlySalary decimal.Decimal, c leave.Classification) (decimal.Decimal, error) {
	if monthlySalary.IsNegative() {
		return decimal.Zero, ErrNegativeSalary
	}
	divisor := leave.DefaultBusinessDays
	if c == leave.ClassConsecutive {
		divisor = leave.DefaultConsecutiveDays
	}
	return monthlySalary.Div(decimal.NewFromInt(int64(divisor))), nil
}

// SoldDaysValue returns the compensation owed for sold-back days, rounded to
// two decimal places. Sold days outside 0-10 are rejected with the same
// error the leave engine uses.
func SoldDaysValue(monthlySalary decimal.Decimal, soldDays int, c leave.Classification) (decimal.Decimal, error) {
	if soldDays < 0 || soldDays > 10 {
		return decimal.Zero, leave.ErrInvalidSoldDays
	}
	rate, err := DailyRate(monthlySalary, c)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Mul(decimal.NewFromInt(int64(soldDays))).Round(2), nil
}
