package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/schedule"
	"github.com/mfiguera/credimutual/internal/scope"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// CreditService creates, reads and annuls credits. Credit and schedule are
// always written together in one tenant-scoped unit of work.
type CreditService struct {
	session         scope.Runner
	creditRepo      repository.CreditRepository
	installmentRepo repository.InstallmentRepository
	associateRepo   repository.AssociateRepository
	productRepo     repository.ProductRepository
	log             *logrus.Logger
}

func NewCreditService(
	session scope.Runner,
	creditRepo repository.CreditRepository,
	installmentRepo repository.InstallmentRepository,
	associateRepo repository.AssociateRepository,
	productRepo repository.ProductRepository,
	log *logrus.Logger,
) *CreditService {
	return &CreditService{
		session:         session,
		creditRepo:      creditRepo,
		installmentRepo: installmentRepo,
		associateRepo:   associateRepo,
		productRepo:     productRepo,
		log:             log,
	}
}

// CreateCredit issues a credit for an associate against a product. The
// product's terms are snapshot onto the credit and the full installment
// schedule is generated and persisted atomically with it.
func (s *CreditService) CreateCredit(ctx context.Context, sc scope.Scope, request *domain.CreateCreditRequest) (*domain.CreateCreditResponse, error) {
	if request.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidConfiguration("principal must be positive")
	}

	var response *domain.CreateCreditResponse
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		associate, err := s.associateRepo.GetByID(ctx, q, request.AssociateID)
		if err != nil {
			return notFoundOr(err, "associate", request.AssociateID.String())
		}

		product, err := s.productRepo.GetByID(ctx, q, request.ProductID)
		if err != nil {
			return notFoundOr(err, "product", request.ProductID.String())
		}

		now := time.Now().UTC()
		specs, err := schedule.Generate(
			request.Principal,
			product.PeriodicRate,
			product.InstallmentCount,
			product.DueDay,
			product.DueDateRule,
			now,
		)
		if err != nil {
			return err
		}

		credit := &domain.Credit{
			ID:               uuid.New(),
			MutualID:         sc.MutualID,
			AssociateID:      associate.ID,
			ProductID:        product.ID,
			Principal:        request.Principal,
			PeriodicRate:     product.PeriodicRate,
			InstallmentCount: product.InstallmentCount,
			DueDay:           product.DueDay,
			DueDateRule:      product.DueDateRule,
			Status:           domain.CreditStatusActive,
			Notes:            request.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		installments := make([]*domain.Installment, 0, len(specs))
		for _, spec := range specs {
			installments = append(installments, &domain.Installment{
				ID:          uuid.New(),
				MutualID:    sc.MutualID,
				CreditID:    credit.ID,
				Number:      spec.Number,
				DueDate:     spec.DueDate,
				TotalAmount: spec.Amount,
				AmountPaid:  decimal.Zero,
				Status:      domain.InstallmentStatusPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}

		if err := s.creditRepo.Create(ctx, q, credit); err != nil {
			return customError.WrapOperationFailed(err)
		}
		if err := s.installmentRepo.CreateBatch(ctx, q, installments); err != nil {
			return customError.WrapOperationFailed(err)
		}

		response = &domain.CreateCreditResponse{Credit: credit, Installments: installments}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"mutual_id":    sc.MutualID,
		"credit_id":    response.Credit.ID,
		"installments": len(response.Installments),
	}).Info("credit created")

	return response, nil
}

// GetCredit returns a credit with its full schedule.
func (s *CreditService) GetCredit(ctx context.Context, sc scope.Scope, creditID uuid.UUID) (*domain.CreateCreditResponse, error) {
	var response *domain.CreateCreditResponse
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		credit, err := s.creditRepo.GetByID(ctx, q, creditID)
		if err != nil {
			return notFoundOr(err, "credit", creditID.String())
		}

		installments, err := s.installmentRepo.ListByCredit(ctx, q, creditID)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}

		response = &domain.CreateCreditResponse{Credit: credit, Installments: installments}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListCreditsByAssociate returns an associate's credits, newest first.
func (s *CreditService) ListCreditsByAssociate(ctx context.Context, sc scope.Scope, associateID uuid.UUID) ([]*domain.Credit, error) {
	var credits []*domain.Credit
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		if _, err := s.associateRepo.GetByID(ctx, q, associateID); err != nil {
			return notFoundOr(err, "associate", associateID.String())
		}

		var err error
		credits, err = s.creditRepo.ListByAssociate(ctx, q, associateID)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return credits, nil
}

// AnnulCredit annuls an active credit: every pending or partial installment
// is cancelled (remaining balance forgiven) and the credit leaves the active
// state, all in one unit of work. Paid installments keep their state.
func (s *CreditService) AnnulCredit(ctx context.Context, sc scope.Scope, creditID uuid.UUID) (*domain.CreateCreditResponse, error) {
	var response *domain.CreateCreditResponse
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		credit, err := s.creditRepo.GetByID(ctx, q, creditID)
		if err != nil {
			return notFoundOr(err, "credit", creditID.String())
		}
		if credit.Status != domain.CreditStatusActive {
			return customError.WrapInvalidConfiguration("credit " + creditID.String() + " is already annulled")
		}

		installments, err := s.installmentRepo.ListByCredit(ctx, q, creditID)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}

		for _, installment := range installments {
			if !installment.Payable() {
				continue
			}
			if err := installment.Cancel(); err != nil {
				return err
			}
			if err := s.installmentRepo.Update(ctx, q, installment); err != nil {
				return customError.WrapOperationFailed(err)
			}
		}

		if err := s.creditRepo.UpdateStatus(ctx, q, creditID, domain.CreditStatusAnnulled); err != nil {
			return customError.WrapOperationFailed(err)
		}
		credit.Status = domain.CreditStatusAnnulled

		response = &domain.CreateCreditResponse{Credit: credit, Installments: installments}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"mutual_id": sc.MutualID,
		"credit_id": creditID,
	}).Info("credit annulled")

	return response, nil
}

// notFoundOr maps a missing row to the not-found taxonomy error. Under
// row-level security a foreign tenant's row and an absent row are the same
// thing: no rows.
func notFoundOr(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapEntityNotFound(kind, id)
	}
	return customError.WrapOperationFailed(err)
}
