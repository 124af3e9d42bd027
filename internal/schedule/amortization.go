package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfiguera/credimutual/internal/domain"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// InstallmentSpec is one row of a generated amortization schedule.
type InstallmentSpec struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// PeriodicPayment computes the constant per-period payment for a fixed-rate
// annuity, rounded to the currency's minor unit.
//
//	payment = P * (i * (1+i)^n) / ((1+i)^n - 1)   for i > 0
//	payment = P / n                               for i == 0
//
// rate is a per-period fraction (0.0958 means 9.58%).
func PeriodicPayment(principal, rate decimal.Decimal, count int) (decimal.Decimal, error) {
	payment, err := exactPayment(principal, rate, count)
	if err != nil {
		return decimal.Zero, err
	}
	return payment.Round(2), nil
}

func exactPayment(principal, rate decimal.Decimal, count int) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, customError.WrapInvalidAmortization(fmt.Sprintf("principal must be positive, got %s", principal))
	}
	if rate.IsNegative() {
		return decimal.Zero, customError.WrapInvalidAmortization(fmt.Sprintf("rate must not be negative, got %s", rate))
	}
	if count < 1 {
		return decimal.Zero, customError.WrapInvalidAmortization(fmt.Sprintf("installment count must be at least 1, got %d", count))
	}

	n := decimal.NewFromInt(int64(count))
	if rate.IsZero() {
		return principal.Div(n), nil
	}

	// (1+i)^n
	factor := decimal.NewFromInt(1).Add(rate).Pow(n)
	return principal.Mul(rate.Mul(factor)).Div(factor.Sub(decimal.NewFromInt(1))), nil
}

// Generate produces the full installment schedule for a credit: count rows
// with equal payments and due dates under the given rule. Rounding residuals
// between count*payment and the theoretical annuity total land on the last
// installment, so the schedule sum always equals the annuity total rounded
// to two decimals. The result is a pure function of its inputs.
func Generate(principal, rate decimal.Decimal, count, dueDay int, rule domain.DueDateRule, today time.Time) ([]InstallmentSpec, error) {
	exact, err := exactPayment(principal, rate, count)
	if err != nil {
		return nil, err
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, customError.WrapInvalidAmortization(fmt.Sprintf("due day must be between 1 and 31, got %d", dueDay))
	}
	if !rule.Valid() {
		return nil, customError.WrapInvalidAmortization(fmt.Sprintf("unknown due date rule %q", rule))
	}

	payment := exact.Round(2)
	total := exact.Mul(decimal.NewFromInt(int64(count))).Round(2)
	dueDates := DueDates(today, dueDay, rule, count)

	specs := make([]InstallmentSpec, 0, count)
	for k := 0; k < count; k++ {
		amount := payment
		if k == count-1 {
			// Last installment absorbs the cent-level residual.
			amount = total.Sub(payment.Mul(decimal.NewFromInt(int64(count - 1))))
		}
		specs = append(specs, InstallmentSpec{
			Number:  k + 1,
			DueDate: dueDates[k],
			Amount:  amount,
		})
	}

	return specs, nil
}
