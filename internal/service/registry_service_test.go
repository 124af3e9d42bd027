package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository/mocks"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

func newRegistryService(mutualRepo *mocks.MockMutualRepository, associateRepo *mocks.MockAssociateRepository, productRepo *mocks.MockProductRepository) *RegistryService {
	return NewRegistryService(stubRunner{}, nil, mutualRepo, associateRepo, productRepo, testLogger())
}

func validProductRequest() *domain.CreateProductRequest {
	return &domain.CreateProductRequest{
		Name:             "credito ordinario",
		PeriodicRate:     decimal.RequireFromString("0.0958"),
		InstallmentCount: 6,
		DueDay:           10,
		DueDateRule:      domain.DueDateClampToLastDay,
		CommissionRate:   decimal.RequireFromString("0.02"),
	}
}

func TestCreateMutual(t *testing.T) {
	mutualRepo := &mocks.MockMutualRepository{}
	svc := newRegistryService(mutualRepo, &mocks.MockAssociateRepository{}, &mocks.MockProductRepository{})

	mutualRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(mutual *domain.Mutual) bool {
		return mutual.Name == "Mutual del Litoral"
	})).Return(nil)

	mutual, err := svc.CreateMutual(context.Background(), "  Mutual del Litoral  ")

	require.NoError(t, err)
	assert.Equal(t, "Mutual del Litoral", mutual.Name)
	mutualRepo.AssertExpectations(t)
}

func TestCreateMutual_RejectsEmptyName(t *testing.T) {
	mutualRepo := &mocks.MockMutualRepository{}
	svc := newRegistryService(mutualRepo, &mocks.MockAssociateRepository{}, &mocks.MockProductRepository{})

	_, err := svc.CreateMutual(context.Background(), "   ")

	assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
	mutualRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAssociate(t *testing.T) {
	associateRepo := &mocks.MockAssociateRepository{}
	svc := newRegistryService(&mocks.MockMutualRepository{}, associateRepo, &mocks.MockProductRepository{})

	associateRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(associate *domain.Associate) bool {
		return associate.MutualID == 1 && associate.FullName == "Ana Suarez" && associate.WalletBalance.IsZero()
	})).Return(nil)

	associate, err := svc.CreateAssociate(context.Background(), testScope(), &domain.CreateAssociateRequest{
		FullName: " Ana Suarez ",
		Document: "30123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Suarez", associate.FullName)
	assert.Equal(t, int64(1), associate.MutualID)
	associateRepo.AssertExpectations(t)
}

func TestCreateProduct(t *testing.T) {
	productRepo := &mocks.MockProductRepository{}
	svc := newRegistryService(&mocks.MockMutualRepository{}, &mocks.MockAssociateRepository{}, productRepo)

	productRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(product *domain.Product) bool {
		return product.MutualID == 1 && product.InstallmentCount == 6
	})).Return(nil)

	product, err := svc.CreateProduct(context.Background(), testScope(), validProductRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.DueDateClampToLastDay, product.DueDateRule)
	productRepo.AssertExpectations(t)
}

func TestValidateProduct(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.CreateProductRequest)
	}{
		{"empty name", func(r *domain.CreateProductRequest) { r.Name = "  " }},
		{"negative rate", func(r *domain.CreateProductRequest) { r.PeriodicRate = decimal.RequireFromString("-0.01") }},
		{"rate above one", func(r *domain.CreateProductRequest) { r.PeriodicRate = decimal.RequireFromString("1.01") }},
		{"zero installments", func(r *domain.CreateProductRequest) { r.InstallmentCount = 0 }},
		{"too many installments", func(r *domain.CreateProductRequest) { r.InstallmentCount = 361 }},
		{"due day zero", func(r *domain.CreateProductRequest) { r.DueDay = 0 }},
		{"due day 32", func(r *domain.CreateProductRequest) { r.DueDay = 32 }},
		{"unknown rule", func(r *domain.CreateProductRequest) { r.DueDateRule = "whenever" }},
		{"negative commission", func(r *domain.CreateProductRequest) { r.CommissionRate = decimal.RequireFromString("-0.01") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := validProductRequest()
			tc.mutate(request)
			err := validateProduct(request)
			assert.ErrorIs(t, err, customError.ErrInvalidConfiguration)
		})
	}

	assert.NoError(t, validateProduct(validProductRequest()))
}
