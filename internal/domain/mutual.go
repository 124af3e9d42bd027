package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mutual is a tenant: an organization owning its own associates, products
// and credits. Every other entity carries its mutual id, and the store's
// row-level-security policies confine each session to one mutual.
type Mutual struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Associate is a member of a mutual who can receive credits. The wallet
// balance is a prepaid amount; deposits only ever increase it.
type Associate struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MutualID      int64           `json:"mutual_id" db:"mutual_id"`
	FullName      string          `json:"full_name" db:"full_name"`
	Document      string          `json:"document" db:"document"`
	WalletBalance decimal.Decimal `json:"wallet_balance" db:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateAssociateRequest struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Document string `json:"document" validate:"required,max=32"`
}

type DepositRequest struct {
	AssociateID uuid.UUID       `json:"associate_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Reference   string          `json:"reference" validate:"max=200"`
}
