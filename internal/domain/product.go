package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueDateRule controls how a configured due day is mapped onto months that
// are shorter than the day asks for.
type DueDateRule string

const (
	// DueDateClampToLastDay moves a day past the end of the month back to the
	// month's last calendar day (day 31 in February becomes Feb 28/29).
	DueDateClampToLastDay DueDateRule = "clamp_to_last_day"

	// DueDateStrict always uses the configured day. Days invalid for a month
	// normalize forward the way time.Date does; callers picking this rule are
	// responsible for choosing a day valid in every month.
	DueDateStrict DueDateRule = "strict"
)

func (r DueDateRule) Valid() bool {
	return r == DueDateClampToLastDay || r == DueDateStrict
}

// Product is a lending template owned by a mutual. Credits snapshot the
// product's terms at creation, so editing a product never rewrites an
// existing schedule.
type Product struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	MutualID         int64           `json:"mutual_id" db:"mutual_id"`
	Name             string          `json:"name" db:"name"`
	PeriodicRate     decimal.Decimal `json:"periodic_rate" db:"periodic_rate"`
	InstallmentCount int             `json:"installment_count" db:"installment_count"`
	DueDay           int             `json:"due_day" db:"due_day"`
	DueDateRule      DueDateRule     `json:"due_date_rule" db:"due_date_rule"`
	CommissionRate   decimal.Decimal `json:"commission_rate" db:"commission_rate"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,max=120"`
	PeriodicRate     decimal.Decimal `json:"periodic_rate"`
	InstallmentCount int             `json:"installment_count" validate:"required,min=1,max=360"`
	DueDay           int             `json:"due_day" validate:"required,min=1,max=31"`
	DueDateRule      DueDateRule     `json:"due_date_rule" validate:"required"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
}
