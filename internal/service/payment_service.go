package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/scope"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// PaymentService applies money against installments and manages wallet
// deposits. All allocation happens inside one tenant-scoped unit of work;
// payments and links are append-only.
type PaymentService struct {
	session         scope.Runner
	installmentRepo repository.InstallmentRepository
	paymentRepo     repository.PaymentRepository
	associateRepo   repository.AssociateRepository
	log             *logrus.Logger
}

func NewPaymentService(
	session scope.Runner,
	installmentRepo repository.InstallmentRepository,
	paymentRepo repository.PaymentRepository,
	associateRepo repository.AssociateRepository,
	log *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		session:         session,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		associateRepo:   associateRepo,
		log:             log,
	}
}

// PayInstallment applies a single payment to one installment. The
// installment moves to paid when the amount covers the remaining balance,
// to partial otherwise. One Payment with one link is recorded either way.
func (s *PaymentService) PayInstallment(ctx context.Context, sc scope.Scope, request *domain.PayInstallmentRequest) (*domain.CollectInstallmentsResponse, error) {
	if request.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidConfiguration("payment amount must be positive")
	}
	paidAt := request.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	var response *domain.CollectInstallmentsResponse
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		installments, err := s.installmentRepo.ListForUpdate(ctx, q, []uuid.UUID{request.InstallmentID})
		if err != nil {
			return customError.WrapOperationFailed(err)
		}
		if len(installments) == 0 {
			return customError.WrapEntityNotFound("installment", request.InstallmentID.String())
		}

		installment := installments[0]
		if err := installment.ApplyPayment(request.Amount); err != nil {
			return err
		}

		payment := &domain.Payment{
			ID:        uuid.New(),
			MutualID:  sc.MutualID,
			Amount:    request.Amount,
			PaidAt:    paidAt,
			Reference: request.Reference,
			CreatedBy: sc.CallerID,
			CreatedAt: time.Now().UTC(),
		}
		links := []*domain.PaymentInstallmentLink{{
			ID:            uuid.New(),
			MutualID:      sc.MutualID,
			PaymentID:     payment.ID,
			InstallmentID: installment.ID,
			Amount:        request.Amount,
		}}

		if err := s.paymentRepo.Create(ctx, q, payment); err != nil {
			return customError.WrapOperationFailed(err)
		}
		if err := s.paymentRepo.CreateLinks(ctx, q, links); err != nil {
			return customError.WrapOperationFailed(err)
		}
		if err := s.installmentRepo.Update(ctx, q, installment); err != nil {
			return customError.WrapOperationFailed(err)
		}

		response = &domain.CollectInstallmentsResponse{
			Payment:      payment,
			Installments: installments,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"mutual_id":      sc.MutualID,
		"installment_id": request.InstallmentID,
		"amount":         request.Amount,
	}).Info("installment payment applied")

	return response, nil
}

// CollectInstallments settles a selection of installments in full. Every
// selected installment must exist in the tenant scope and still be payable;
// the whole batch either commits together, with one Payment covering the sum
// of remaining balances and one link per installment, or fails with zero
// side effects. A selection containing a paid or cancelled installment is
// rejected, never silently skipped.
func (s *PaymentService) CollectInstallments(ctx context.Context, sc scope.Scope, request *domain.CollectInstallmentsRequest) (*domain.CollectInstallmentsResponse, error) {
	if len(request.InstallmentIDs) == 0 {
		return nil, customError.WrapInvalidConfiguration("installment selection is empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(request.InstallmentIDs))
	for _, id := range request.InstallmentIDs {
		if _, dup := seen[id]; dup {
			return nil, customError.WrapInvalidConfiguration(fmt.Sprintf("installment %s selected more than once", id))
		}
		seen[id] = struct{}{}
	}
	paidAt := request.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	var response *domain.CollectInstallmentsResponse
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		installments, err := s.installmentRepo.ListForUpdate(ctx, q, request.InstallmentIDs)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}

		// Validate the whole selection before touching anything.
		byID := make(map[uuid.UUID]*domain.Installment, len(installments))
		for _, installment := range installments {
			byID[installment.ID] = installment
		}
		total := decimal.Zero
		for _, id := range request.InstallmentIDs {
			installment, ok := byID[id]
			if !ok {
				return customError.WrapEntityNotFound("installment", id.String())
			}
			if !installment.Payable() {
				return customError.WrapInstallmentNotPayable(id.String(), installment.Status)
			}
			total = total.Add(installment.RemainingBalance())
		}

		payment := &domain.Payment{
			ID:        uuid.New(),
			MutualID:  sc.MutualID,
			Amount:    total,
			PaidAt:    paidAt,
			Reference: request.Reference,
			CreatedBy: sc.CallerID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.paymentRepo.Create(ctx, q, payment); err != nil {
			return customError.WrapOperationFailed(err)
		}

		links := make([]*domain.PaymentInstallmentLink, 0, len(installments))
		for _, installment := range installments {
			remaining := installment.RemainingBalance()
			if err := installment.ApplyPayment(remaining); err != nil {
				return err
			}
			if err := s.installmentRepo.Update(ctx, q, installment); err != nil {
				return customError.WrapOperationFailed(err)
			}
			links = append(links, &domain.PaymentInstallmentLink{
				ID:            uuid.New(),
				MutualID:      sc.MutualID,
				PaymentID:     payment.ID,
				InstallmentID: installment.ID,
				Amount:        remaining,
			})
		}
		if err := s.paymentRepo.CreateLinks(ctx, q, links); err != nil {
			return customError.WrapOperationFailed(err)
		}

		response = &domain.CollectInstallmentsResponse{
			Payment:      payment,
			Installments: installments,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"mutual_id":  sc.MutualID,
		"payment_id": response.Payment.ID,
		"count":      len(response.Installments),
		"amount":     response.Payment.Amount,
	}).Info("installments collected")

	return response, nil
}

// Deposit increments an associate's wallet balance. Deposits never fund
// installments here; the wallet is a plain prepaid balance.
func (s *PaymentService) Deposit(ctx context.Context, sc scope.Scope, request *domain.DepositRequest) (*domain.Associate, error) {
	if request.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidConfiguration("deposit amount must be positive")
	}

	var associate *domain.Associate
	err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		if err := s.associateRepo.AddToWallet(ctx, q, request.AssociateID, request.Amount); err != nil {
			return notFoundOr(err, "associate", request.AssociateID.String())
		}

		var err error
		associate, err = s.associateRepo.GetByID(ctx, q, request.AssociateID)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"mutual_id":    sc.MutualID,
		"associate_id": request.AssociateID,
		"amount":       request.Amount,
	}).Info("wallet deposit recorded")

	return associate, nil
}
