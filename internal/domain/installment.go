package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customError "github.com/mfiguera/credimutual/pkg/errors"
)

const (
	InstallmentStatusPending   = "pending"
	InstallmentStatusPartial   = "partial"
	InstallmentStatusPaid      = "paid"
	InstallmentStatusCancelled = "cancelled"
)

// Installment is one scheduled payment obligation within a Credit.
// State follows amount_paid: zero is pending, below total is partial, equal
// is paid. Cancelled is reached only through credit annulment. Paid and
// cancelled are terminal.
type Installment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	MutualID    int64           `json:"mutual_id" db:"mutual_id"`
	CreditID    uuid.UUID       `json:"credit_id" db:"credit_id"`
	Number      int             `json:"number" db:"number"`
	DueDate     time.Time       `json:"due_date" db:"due_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// RemainingBalance returns total_amount - amount_paid.
func (i *Installment) RemainingBalance() decimal.Decimal {
	return i.TotalAmount.Sub(i.AmountPaid)
}

// Payable reports whether the installment can still receive payments.
func (i *Installment) Payable() bool {
	return i.Status == InstallmentStatusPending || i.Status == InstallmentStatusPartial
}

// ApplyPayment increments amount_paid and advances the state. The amount
// must be positive and must not exceed the remaining balance.
func (i *Installment) ApplyPayment(amount decimal.Decimal) error {
	if !i.Payable() {
		return customError.WrapInstallmentNotPayable(i.ID.String(), i.Status)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return customError.WrapInvalidConfiguration("payment amount must be positive")
	}
	remaining := i.RemainingBalance()
	if amount.GreaterThan(remaining) {
		return customError.WrapInvalidConfiguration("payment amount exceeds remaining balance of installment " + i.ID.String())
	}

	i.AmountPaid = i.AmountPaid.Add(amount)
	if i.AmountPaid.Equal(i.TotalAmount) {
		i.Status = InstallmentStatusPaid
	} else {
		i.Status = InstallmentStatusPartial
	}
	return nil
}

// Cancel forgives the remaining balance. Only pending and partial
// installments can be cancelled.
func (i *Installment) Cancel() error {
	if !i.Payable() {
		return customError.WrapInstallmentNotPayable(i.ID.String(), i.Status)
	}
	i.Status = InstallmentStatusCancelled
	return nil
}
