package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository/mocks"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

func newPaymentService(installmentRepo *mocks.MockInstallmentRepository, paymentRepo *mocks.MockPaymentRepository, associateRepo *mocks.MockAssociateRepository) *PaymentService {
	return NewPaymentService(stubRunner{}, installmentRepo, paymentRepo, associateRepo, testLogger())
}

func pendingInstallment(total string) *domain.Installment {
	return &domain.Installment{
		ID:          uuid.New(),
		MutualID:    1,
		CreditID:    uuid.New(),
		Number:      1,
		TotalAmount: decimal.RequireFromString(total),
		AmountPaid:  decimal.Zero,
		Status:      domain.InstallmentStatusPending,
	}
}

func TestPayInstallment_PartialPayment(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	svc := newPaymentService(installmentRepo, paymentRepo, &mocks.MockAssociateRepository{})

	installment := pendingInstallment("100.00")
	amount := decimal.RequireFromString("40.00")

	installmentRepo.On("ListForUpdate", mock.Anything, mock.Anything, []uuid.UUID{installment.ID}).
		Return([]*domain.Installment{installment}, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(payment *domain.Payment) bool {
		return payment.Amount.Equal(amount) && payment.CreatedBy == "user-1"
	})).Return(nil)
	paymentRepo.On("CreateLinks", mock.Anything, mock.Anything, mock.MatchedBy(func(links []*domain.PaymentInstallmentLink) bool {
		return len(links) == 1 && links[0].InstallmentID == installment.ID && links[0].Amount.Equal(amount)
	})).Return(nil)
	installmentRepo.On("Update", mock.Anything, mock.Anything, installment).Return(nil)

	result, err := svc.PayInstallment(context.Background(), testScope(), &domain.PayInstallmentRequest{
		InstallmentID: installment.ID,
		Amount:        amount,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentStatusPartial, installment.Status)
	assert.True(t, result.Payment.Amount.Equal(amount))

	paymentRepo.AssertExpectations(t)
	installmentRepo.AssertExpectations(t)
}

func TestPayInstallment_FullPaymentMarksPaid(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	svc := newPaymentService(installmentRepo, paymentRepo, &mocks.MockAssociateRepository{})

	installment := pendingInstallment("100.00")

	installmentRepo.On("ListForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Installment{installment}, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("CreateLinks", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	installmentRepo.On("Update", mock.Anything, mock.Anything, installment).Return(nil)

	_, err := svc.PayInstallment(context.Background(), testScope(), &domain.PayInstallmentRequest{
		InstallmentID: installment.ID,
		Amount:        decimal.RequireFromString("100.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentStatusPaid, installment.Status)
}

func TestPayInstallment_NotFound(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	svc := newPaymentService(installmentRepo, paymentRepo, &mocks.MockAssociateRepository{})

	installmentRepo.On("ListForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Installment{}, nil)

	_, err := svc.PayInstallment(context.Background(), testScope(), &domain.PayInstallmentRequest{
		InstallmentID: uuid.New(),
		Amount:        decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, customError.ErrEntityNotFound)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectInstallments_SettlesSelectionAtomically(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	svc := newPaymentService(installmentRepo, paymentRepo, &mocks.MockAssociateRepository{})

	first := pendingInstallment("100.00")
	second := pendingInstallment("100.00")
	// Third has already been partially paid; only its remainder is collected.
	third := pendingInstallment("100.00")
	require.NoError(t, third.ApplyPayment(decimal.RequireFromString("40.00")))

	ids := []uuid.UUID{first.ID, second.ID, third.ID}
	expectedTotal := decimal.RequireFromString("260.00")

	installmentRepo.On("ListForUpdate", mock.Anything, mock.Anything, ids).
		Return([]*domain.Installment{first, second, third}, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(payment *domain.Payment) bool {
		return payment.Amount.Equal(expectedTotal)
	})).Return(nil)
	paymentRepo.On("CreateLinks", mock.Anything, mock.Anything, mock.MatchedBy(func(links []*domain.PaymentInstallmentLink) bool {
		if len(links) != 3 {
			return false
		}
		sum := decimal.Zero
		for _, link := range links {
			sum = sum.Add(link.Amount)
		}
		return sum.Equal(expectedTotal)
	})).Return(nil)
	installmentRepo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CollectInstallments(context.Background(), testScope(), &domain.CollectInstallmentsRequest{
		InstallmentIDs: ids,
	})

	require.NoError(t, err)
	assert.True(t, result.Payment.Amount.Equal(expectedTotal))
	for _, installment := range []*domain.Installment{first, second, third} {
		assert.Equal(t, domain.InstallmentStatusPaid, installment.Status)
	}

	paymentRepo.AssertExpectations(t)
	installmentRepo.AssertNumberOfCalls(t, "Update", 3)
}

func TestCollectInstallments_RejectsAlreadyPaidSelection(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	svc := newPaymentService(installmentRepo, paymentRepo, &mocks.MockAssociateRepository{})

	unpaid := pendingInstallment("100.00")
	paid := pendingInstallment("100.00")
	require.NoError(t, paid.ApplyPayment(decimal.RequireFromString("100.00")))

	installmentRepo.On("ListForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Installment{unpaid, paid}, nil)

	_, err := svc.CollectInstallments(context.Background(), testScope(), &domain.CollectInstallmentsRequest{
		InstallmentIDs: []uuid.UUID{unpaid.ID, paid.ID},
	})

	// The whole batch fails and nothing is written.
	assert.ErrorIs(t, err, customError.ErrInstallmentNotPayable)
	assert.Equal(t, domain.InstallmentStatusPending, unpaid.Status)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	installmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectInstallments_RejectsUnknownInstallment(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	svc := newPaymentService(installmentRepo, paymentRepo, &mocks.MockAssociateRepository{})

	known := pendingInstallment("100.00")
	unknownID := uuid.New()

	// The store only returns rows visible in the tenant scope; a foreign or
	// absent id simply does not come back.
	installmentRepo.On("ListForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Installment{known}, nil)

	_, err := svc.CollectInstallments(context.Background(), testScope(), &domain.CollectInstallmentsRequest{
		InstallmentIDs: []uuid.UUID{known.ID, unknownID},
	})

	assert.ErrorIs(t, err, customError.ErrEntityNotFound)
	assert.Contains(t, err.Error(), unknownID.String())
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectInstallments_RejectsDuplicateSelection(t *testing.T) {
	installmentRepo := &mocks.MockInstallmentRepository{}
	svc := newPaymentService(installmentRepo, &mocks.MockPaymentRepository{}, &mocks.MockAssociateRepository{})

	id := uuid.New()
	_, err := svc.CollectInstallments(context.Background(), testScope(), &domain.CollectInstallmentsRequest{
		InstallmentIDs: []uuid.UUID{id, id},
	})

	assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
	installmentRepo.AssertNotCalled(t, "ListForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectInstallments_RejectsEmptySelection(t *testing.T) {
	svc := newPaymentService(&mocks.MockInstallmentRepository{}, &mocks.MockPaymentRepository{}, &mocks.MockAssociateRepository{})

	_, err := svc.CollectInstallments(context.Background(), testScope(), &domain.CollectInstallmentsRequest{})

	assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
}

func TestDeposit_IncrementsWallet(t *testing.T) {
	associateRepo := &mocks.MockAssociateRepository{}
	svc := newPaymentService(&mocks.MockInstallmentRepository{}, &mocks.MockPaymentRepository{}, associateRepo)

	associateID := uuid.New()
	amount := decimal.RequireFromString("150.00")

	associateRepo.On("AddToWallet", mock.Anything, mock.Anything, associateID, amount).Return(nil)
	associateRepo.On("GetByID", mock.Anything, mock.Anything, associateID).
		Return(&domain.Associate{ID: associateID, WalletBalance: amount}, nil)

	associate, err := svc.Deposit(context.Background(), testScope(), &domain.DepositRequest{
		AssociateID: associateID,
		Amount:      amount,
	})

	require.NoError(t, err)
	assert.True(t, associate.WalletBalance.Equal(amount))
	associateRepo.AssertExpectations(t)
}

func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	associateRepo := &mocks.MockAssociateRepository{}
	svc := newPaymentService(&mocks.MockInstallmentRepository{}, &mocks.MockPaymentRepository{}, associateRepo)

	_, err := svc.Deposit(context.Background(), testScope(), &domain.DepositRequest{
		AssociateID: uuid.New(),
		Amount:      decimal.Zero,
	})

	assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
	associateRepo.AssertNotCalled(t, "AddToWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
