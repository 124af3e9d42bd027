package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository"
)

type MockMutualRepository struct {
	mock.Mock
}

func (m *MockMutualRepository) Create(ctx context.Context, q repository.Queryer, mutual *domain.Mutual) error {
	args := m.Called(ctx, q, mutual)
	return args.Error(0)
}

func (m *MockMutualRepository) GetByID(ctx context.Context, q repository.Queryer, id int64) (*domain.Mutual, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mutual), args.Error(1)
}

func (m *MockMutualRepository) List(ctx context.Context, q repository.Queryer) ([]*domain.Mutual, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mutual), args.Error(1)
}

type MockAssociateRepository struct {
	mock.Mock
}

func (m *MockAssociateRepository) Create(ctx context.Context, q repository.Queryer, associate *domain.Associate) error {
	args := m.Called(ctx, q, associate)
	return args.Error(0)
}

func (m *MockAssociateRepository) GetByID(ctx context.Context, q repository.Queryer, id uuid.UUID) (*domain.Associate, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Associate), args.Error(1)
}

func (m *MockAssociateRepository) List(ctx context.Context, q repository.Queryer) ([]*domain.Associate, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Associate), args.Error(1)
}

func (m *MockAssociateRepository) AddToWallet(ctx context.Context, q repository.Queryer, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, q, id, amount)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, q repository.Queryer, product *domain.Product) error {
	args := m.Called(ctx, q, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, q repository.Queryer, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, q repository.Queryer) ([]*domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Create(ctx context.Context, q repository.Queryer, credit *domain.Credit) error {
	args := m.Called(ctx, q, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) GetByID(ctx context.Context, q repository.Queryer, id uuid.UUID) (*domain.Credit, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListByAssociate(ctx context.Context, q repository.Queryer, associateID uuid.UUID) ([]*domain.Credit, error) {
	args := m.Called(ctx, q, associateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) UpdateStatus(ctx context.Context, q repository.Queryer, id uuid.UUID, status string) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) CreateBatch(ctx context.Context, q repository.Queryer, installments []*domain.Installment) error {
	args := m.Called(ctx, q, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) ListByCredit(ctx context.Context, q repository.Queryer, creditID uuid.UUID) ([]*domain.Installment, error) {
	args := m.Called(ctx, q, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ListForUpdate(ctx context.Context, q repository.Queryer, ids []uuid.UUID) ([]*domain.Installment, error) {
	args := m.Called(ctx, q, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ListDueBetween(ctx context.Context, q repository.Queryer, from, to time.Time) ([]*domain.Installment, error) {
	args := m.Called(ctx, q, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) Update(ctx context.Context, q repository.Queryer, installment *domain.Installment) error {
	args := m.Called(ctx, q, installment)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, q repository.Queryer, payment *domain.Payment) error {
	args := m.Called(ctx, q, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) CreateLinks(ctx context.Context, q repository.Queryer, links []*domain.PaymentInstallmentLink) error {
	args := m.Called(ctx, q, links)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByInstallment(ctx context.Context, q repository.Queryer, installmentID uuid.UUID) ([]*domain.PaymentInstallmentLink, error) {
	args := m.Called(ctx, q, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentInstallmentLink), args.Error(1)
}
