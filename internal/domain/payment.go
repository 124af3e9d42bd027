package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a recorded monetary receipt. Payments and their links are
// append-only: corrections are new compensating records, never edits.
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	MutualID  int64           `json:"mutual_id" db:"mutual_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	PaidAt    time.Time       `json:"paid_at" db:"paid_at"`
	Reference string          `json:"reference" db:"reference"`
	CreatedBy string          `json:"created_by" db:"created_by"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// PaymentInstallmentLink allocates part of a payment to one installment.
// The links of a payment always sum to the payment's amount.
type PaymentInstallmentLink struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MutualID      int64           `json:"mutual_id" db:"mutual_id"`
	PaymentID     uuid.UUID       `json:"payment_id" db:"payment_id"`
	InstallmentID uuid.UUID       `json:"installment_id" db:"installment_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
}

// DTOs for requests and responses

type PayInstallmentRequest struct {
	InstallmentID uuid.UUID       `json:"installment_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaidAt        time.Time       `json:"paid_at"`
	Reference     string          `json:"reference" validate:"max=200"`
}

type CollectInstallmentsRequest struct {
	InstallmentIDs []uuid.UUID `json:"installment_ids" validate:"required,min=1,dive,required"`
	PaidAt         time.Time   `json:"paid_at"`
	Reference      string      `json:"reference" validate:"max=200"`
}

type CollectInstallmentsResponse struct {
	Payment      *Payment       `json:"payment"`
	Installments []*Installment `json:"installments"`
}
