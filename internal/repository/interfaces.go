package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mfiguera/credimutual/internal/domain"
)

// Queryer is the store handle repositories operate through. Inside a
// tenant-scoped unit of work it is the session transaction; both *sqlx.Tx
// and *sqlx.DB satisfy it.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// MutualRepository defines tenant-registry operations. The mutuals table is
// the one table outside row-level security: the scheduler enumerates it to
// open a scope per tenant.
type MutualRepository interface {
	// Create registers a new mutual
	Create(ctx context.Context, q Queryer, mutual *domain.Mutual) error

	// GetByID retrieves a mutual by id
	GetByID(ctx context.Context, q Queryer, id int64) (*domain.Mutual, error)

	// List retrieves all mutuals ordered by id
	List(ctx context.Context, q Queryer) ([]*domain.Mutual, error)
}

// AssociateRepository defines member/borrower data operations
type AssociateRepository interface {
	// Create creates a new associate
	Create(ctx context.Context, q Queryer, associate *domain.Associate) error

	// GetByID retrieves an associate by id within the session's tenant
	GetByID(ctx context.Context, q Queryer, id uuid.UUID) (*domain.Associate, error)

	// List retrieves the tenant's associates
	List(ctx context.Context, q Queryer) ([]*domain.Associate, error)

	// AddToWallet increments an associate's wallet balance
	AddToWallet(ctx context.Context, q Queryer, id uuid.UUID, amount decimal.Decimal) error
}

// ProductRepository defines lending-template data operations
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, q Queryer, product *domain.Product) error

	// GetByID retrieves a product by id within the session's tenant
	GetByID(ctx context.Context, q Queryer, id uuid.UUID) (*domain.Product, error)

	// List retrieves the tenant's products
	List(ctx context.Context, q Queryer) ([]*domain.Product, error)
}

// CreditRepository defines credit data operations
type CreditRepository interface {
	// Create creates a new credit
	Create(ctx context.Context, q Queryer, credit *domain.Credit) error

	// GetByID retrieves a credit by id within the session's tenant
	GetByID(ctx context.Context, q Queryer, id uuid.UUID) (*domain.Credit, error)

	// ListByAssociate retrieves an associate's credits
	ListByAssociate(ctx context.Context, q Queryer, associateID uuid.UUID) ([]*domain.Credit, error)

	// UpdateStatus changes a credit's lifecycle state
	UpdateStatus(ctx context.Context, q Queryer, id uuid.UUID, status string) error
}

// InstallmentRepository defines installment ledger operations
type InstallmentRepository interface {
	// CreateBatch inserts a credit's full schedule
	CreateBatch(ctx context.Context, q Queryer, installments []*domain.Installment) error

	// ListByCredit retrieves a credit's installments ordered by number
	ListByCredit(ctx context.Context, q Queryer, creditID uuid.UUID) ([]*domain.Installment, error)

	// ListForUpdate retrieves the given installments with row locks held
	// for the rest of the unit of work
	ListForUpdate(ctx context.Context, q Queryer, ids []uuid.UUID) ([]*domain.Installment, error)

	// ListDueBetween retrieves installments whose due date falls in
	// [from, to), ordered by due date
	ListDueBetween(ctx context.Context, q Queryer, from, to time.Time) ([]*domain.Installment, error)

	// Update persists amount_paid and status after a transition
	Update(ctx context.Context, q Queryer, installment *domain.Installment) error
}

// PaymentRepository defines payment data operations. Payments and links are
// append-only; there is deliberately no update or delete here.
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, q Queryer, payment *domain.Payment) error

	// CreateLinks inserts the payment's installment allocations
	CreateLinks(ctx context.Context, q Queryer, links []*domain.PaymentInstallmentLink) error

	// ListByInstallment retrieves the links pointing at one installment
	ListByInstallment(ctx context.Context, q Queryer, installmentID uuid.UUID) ([]*domain.PaymentInstallmentLink, error)
}
