package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/repository/mocks"
	"github.com/mfiguera/credimutual/internal/scope"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// stubRunner mimics the session's context checks and hands the body a nil
// store handle; repositories are mocked, so nothing touches it.
type stubRunner struct{}

func (stubRunner) Run(ctx context.Context, sc scope.Scope, fn func(context.Context, repository.Queryer) error) error {
	if sc.MutualID <= 0 {
		return customError.WrapMissingTenantContext(sc.MutualID)
	}
	if sc.CallerID == "" {
		return customError.WrapMissingCallerContext()
	}
	return fn(ctx, nil)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testScope() scope.Scope {
	return scope.Scope{MutualID: 1, CallerID: "user-1"}
}

func TestCreateCredit_Success(t *testing.T) {
	// Arrange
	creditRepo := &mocks.MockCreditRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	associateRepo := &mocks.MockAssociateRepository{}
	productRepo := &mocks.MockProductRepository{}

	svc := NewCreditService(stubRunner{}, creditRepo, installmentRepo, associateRepo, productRepo, testLogger())

	associateID := uuid.New()
	productID := uuid.New()
	associate := &domain.Associate{ID: associateID, MutualID: 1}
	product := &domain.Product{
		ID:               productID,
		MutualID:         1,
		PeriodicRate:     decimal.RequireFromString("0.0958"),
		InstallmentCount: 6,
		DueDay:           10,
		DueDateRule:      domain.DueDateClampToLastDay,
	}

	associateRepo.On("GetByID", mock.Anything, mock.Anything, associateID).Return(associate, nil)
	productRepo.On("GetByID", mock.Anything, mock.Anything, productID).Return(product, nil)
	creditRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(credit *domain.Credit) bool {
		return credit.MutualID == 1 && credit.Status == domain.CreditStatusActive && credit.InstallmentCount == 6
	})).Return(nil)
	installmentRepo.On("CreateBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(installments []*domain.Installment) bool {
		return len(installments) == 6
	})).Return(nil)

	// Act
	result, err := svc.CreateCredit(context.Background(), testScope(), &domain.CreateCreditRequest{
		AssociateID: associateID,
		ProductID:   productID,
		Principal:   decimal.RequireFromString("1078200.00"),
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Installments, 6)
	assert.True(t, result.Installments[0].TotalAmount.Equal(decimal.RequireFromString("244523.42")))
	assert.Equal(t, domain.InstallmentStatusPending, result.Installments[0].Status)
	assert.Equal(t, result.Credit.ID, result.Installments[0].CreditID)

	creditRepo.AssertExpectations(t)
	installmentRepo.AssertExpectations(t)
}

func TestCreateCredit_ProductNotFound(t *testing.T) {
	creditRepo := &mocks.MockCreditRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	associateRepo := &mocks.MockAssociateRepository{}
	productRepo := &mocks.MockProductRepository{}

	svc := NewCreditService(stubRunner{}, creditRepo, installmentRepo, associateRepo, productRepo, testLogger())

	associateID := uuid.New()
	productID := uuid.New()
	associateRepo.On("GetByID", mock.Anything, mock.Anything, associateID).Return(&domain.Associate{ID: associateID}, nil)
	productRepo.On("GetByID", mock.Anything, mock.Anything, productID).Return(nil, sql.ErrNoRows)

	_, err := svc.CreateCredit(context.Background(), testScope(), &domain.CreateCreditRequest{
		AssociateID: associateID,
		ProductID:   productID,
		Principal:   decimal.NewFromInt(1000),
	})

	assert.ErrorIs(t, err, customError.ErrEntityNotFound)
	creditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCredit_RejectsNonPositivePrincipal(t *testing.T) {
	svc := NewCreditService(stubRunner{}, &mocks.MockCreditRepository{}, &mocks.MockInstallmentRepository{},
		&mocks.MockAssociateRepository{}, &mocks.MockProductRepository{}, testLogger())

	_, err := svc.CreateCredit(context.Background(), testScope(), &domain.CreateCreditRequest{
		AssociateID: uuid.New(),
		ProductID:   uuid.New(),
		Principal:   decimal.Zero,
	})

	assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
}

func TestCreateCredit_RequiresTenantScope(t *testing.T) {
	svc := NewCreditService(stubRunner{}, &mocks.MockCreditRepository{}, &mocks.MockInstallmentRepository{},
		&mocks.MockAssociateRepository{}, &mocks.MockProductRepository{}, testLogger())

	_, err := svc.CreateCredit(context.Background(), scope.Scope{MutualID: 0, CallerID: "user-1"},
		&domain.CreateCreditRequest{AssociateID: uuid.New(), ProductID: uuid.New(), Principal: decimal.NewFromInt(100)})

	assert.ErrorIs(t, err, customError.ErrMissingTenantContext)
}

func TestAnnulCredit_CancelsOnlyPayableInstallments(t *testing.T) {
	creditRepo := &mocks.MockCreditRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}

	svc := NewCreditService(stubRunner{}, creditRepo, installmentRepo,
		&mocks.MockAssociateRepository{}, &mocks.MockProductRepository{}, testLogger())

	creditID := uuid.New()
	credit := &domain.Credit{ID: creditID, MutualID: 1, Status: domain.CreditStatusActive}
	installments := []*domain.Installment{
		{ID: uuid.New(), CreditID: creditID, Number: 1, TotalAmount: decimal.NewFromInt(100), AmountPaid: decimal.NewFromInt(100), Status: domain.InstallmentStatusPaid},
		{ID: uuid.New(), CreditID: creditID, Number: 2, TotalAmount: decimal.NewFromInt(100), AmountPaid: decimal.NewFromInt(40), Status: domain.InstallmentStatusPartial},
		{ID: uuid.New(), CreditID: creditID, Number: 3, TotalAmount: decimal.NewFromInt(100), AmountPaid: decimal.Zero, Status: domain.InstallmentStatusPending},
	}

	creditRepo.On("GetByID", mock.Anything, mock.Anything, creditID).Return(credit, nil)
	installmentRepo.On("ListByCredit", mock.Anything, mock.Anything, creditID).Return(installments, nil)
	installmentRepo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	creditRepo.On("UpdateStatus", mock.Anything, mock.Anything, creditID, domain.CreditStatusAnnulled).Return(nil)

	result, err := svc.AnnulCredit(context.Background(), testScope(), creditID)

	require.NoError(t, err)
	assert.Equal(t, domain.CreditStatusAnnulled, result.Credit.Status)
	assert.Equal(t, domain.InstallmentStatusPaid, installments[0].Status)
	assert.Equal(t, domain.InstallmentStatusCancelled, installments[1].Status)
	assert.Equal(t, domain.InstallmentStatusCancelled, installments[2].Status)

	// Only the two payable installments are written back.
	installmentRepo.AssertNumberOfCalls(t, "Update", 2)
	creditRepo.AssertExpectations(t)
}

func TestAnnulCredit_AlreadyAnnulled(t *testing.T) {
	creditRepo := &mocks.MockCreditRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}

	svc := NewCreditService(stubRunner{}, creditRepo, installmentRepo,
		&mocks.MockAssociateRepository{}, &mocks.MockProductRepository{}, testLogger())

	creditID := uuid.New()
	creditRepo.On("GetByID", mock.Anything, mock.Anything, creditID).
		Return(&domain.Credit{ID: creditID, Status: domain.CreditStatusAnnulled}, nil)

	_, err := svc.AnnulCredit(context.Background(), testScope(), creditID)

	assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
	creditRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
