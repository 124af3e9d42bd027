package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CreditStatusActive   = "active"
	CreditStatusAnnulled = "annulled"
)

// Credit is an issued loan against a Product for an Associate. The product
// terms are copied onto the credit at creation time; the installment
// schedule is generated exactly once, together with the credit.
type Credit struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	MutualID         int64           `json:"mutual_id" db:"mutual_id"`
	AssociateID      uuid.UUID       `json:"associate_id" db:"associate_id"`
	ProductID        uuid.UUID       `json:"product_id" db:"product_id"`
	Principal        decimal.Decimal `json:"principal" db:"principal"`
	PeriodicRate     decimal.Decimal `json:"periodic_rate" db:"periodic_rate"`
	InstallmentCount int             `json:"installment_count" db:"installment_count"`
	DueDay           int             `json:"due_day" db:"due_day"`
	DueDateRule      DueDateRule     `json:"due_date_rule" db:"due_date_rule"`
	Status           string          `json:"status" db:"status"`
	Notes            string          `json:"notes" db:"notes"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateCreditRequest struct {
	AssociateID uuid.UUID       `json:"associate_id" validate:"required"`
	ProductID   uuid.UUID       `json:"product_id" validate:"required"`
	Principal   decimal.Decimal `json:"principal" validate:"required"`
	Notes       string          `json:"notes" validate:"max=500"`
}

type CreateCreditResponse struct {
	Credit       *Credit        `json:"credit"`
	Installments []*Installment `json:"installments"`
}
