package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/scope"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

var maxRate = decimal.NewFromInt(1)

// RegistryService manages the per-mutual catalogs (associates, products)
// and the tenant registry itself. Mutual creation is the one administrative
// operation that runs outside a tenant scope.
type RegistryService struct {
	session       scope.Runner
	store         repository.Queryer
	mutualRepo    repository.MutualRepository
	associateRepo repository.AssociateRepository
	productRepo   repository.ProductRepository
	log           *logrus.Logger
}

func NewRegistryService(
	session scope.Runner,
	store repository.Queryer,
	mutualRepo repository.MutualRepository,
	associateRepo repository.AssociateRepository,
	productRepo repository.ProductRepository,
	log *logrus.Logger,
) *RegistryService {
	return &RegistryService{
		session:       session,
		store:         store,
		mutualRepo:    mutualRepo,
		associateRepo: associateRepo,
		productRepo:   productRepo,
		log:           log,
	}
}

// CreateMutual registers a new tenant. Administrative: not tenant-scoped.
func (s *RegistryService) CreateMutual(ctx context.Context, name string) (*domain.Mutual, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, customError.WrapInvalidConfiguration("mutual name must not be empty")
	}

	mutual := &domain.Mutual{Name: name}
	if err := s.mutualRepo.Create(ctx, s.store, mutual); err != nil {
		return nil, customError.WrapOperationFailed(err)
	}

	s.log.WithField("mutual_id", mutual.ID).Info("mutual registered")
	return mutual, nil
}

// CreateAssociate registers a member of the scoped mutual.
func (s *RegistryService) CreateAssociate(ctx context.Context, sc scope.Scope, request *domain.CreateAssociateRequest) (*domain.Associate, error) {
	if strings.TrimSpace(request.FullName) == "" {
		return nil, customError.WrapInvalidConfiguration("associate name must not be empty")
	}

	associate := &domain.Associate{
		ID:            uuid.New(),
		MutualID:      sc.MutualID,
		FullName:      strings.TrimSpace(request.FullName),
		Document:      strings.TrimSpace(request.Document),
		WalletBalance: decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		if err := s.associateRepo.Create(ctx, q, associate); err != nil {
			return customError.WrapOperationFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return associate, nil
}

// ListAssociates returns the scoped mutual's members.
func (s *RegistryService) ListAssociates(ctx context.Context, sc scope.Scope) ([]*domain.Associate, error) {
	var associates []*domain.Associate
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		var err error
		associates, err = s.associateRepo.List(ctx, q)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return associates, nil
}

// CreateProduct registers a lending template for the scoped mutual.
// Existing credits are never touched by later product changes: credits
// snapshot the product terms at issue time.
func (s *RegistryService) CreateProduct(ctx context.Context, sc scope.Scope, request *domain.CreateProductRequest) (*domain.Product, error) {
	if err := validateProduct(request); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:               uuid.New(),
		MutualID:         sc.MutualID,
		Name:             strings.TrimSpace(request.Name),
		PeriodicRate:     request.PeriodicRate,
		InstallmentCount: request.InstallmentCount,
		DueDay:           request.DueDay,
		DueDateRule:      request.DueDateRule,
		CommissionRate:   request.CommissionRate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		if err := s.productRepo.Create(ctx, q, product); err != nil {
			return customError.WrapOperationFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts returns the scoped mutual's lending templates.
func (s *RegistryService) ListProducts(ctx context.Context, sc scope.Scope) ([]*domain.Product, error) {
	var products []*domain.Product
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		var err error
		products, err = s.productRepo.List(ctx, q)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func validateProduct(request *domain.CreateProductRequest) error {
	if strings.TrimSpace(request.Name) == "" {
		return customError.WrapInvalidConfiguration("product name must not be empty")
	}
	if request.PeriodicRate.IsNegative() || request.PeriodicRate.GreaterThan(maxRate) {
		return customError.WrapInvalidConfiguration("periodic rate must be between 0 and 1")
	}
	if request.InstallmentCount < 1 || request.InstallmentCount > 360 {
		return customError.WrapInvalidConfiguration("installment count must be between 1 and 360")
	}
	if request.DueDay < 1 || request.DueDay > 31 {
		return customError.WrapInvalidConfiguration("due day must be between 1 and 31")
	}
	if !request.DueDateRule.Valid() {
		return customError.WrapInvalidConfiguration("unknown due date rule")
	}
	if request.CommissionRate.IsNegative() {
		return customError.WrapInvalidConfiguration("commission rate must not be negative")
	}
	return nil
}
