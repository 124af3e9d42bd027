package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/scope"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// SchedulerCaller identifies units of work opened by background jobs.
const SchedulerCaller = "scheduler"

// ReminderService drives the daily due-soon job: it walks every mutual and,
// inside each tenant's own scope, reports the installments falling due
// within the reminder window.
type ReminderService struct {
	session         scope.Runner
	store           repository.Queryer
	mutualRepo      repository.MutualRepository
	installmentRepo repository.InstallmentRepository
	log             *logrus.Logger
}

func NewReminderService(
	session scope.Runner,
	store repository.Queryer,
	mutualRepo repository.MutualRepository,
	installmentRepo repository.InstallmentRepository,
	log *logrus.Logger,
) *ReminderService {
	return &ReminderService{
		session:         session,
		store:           store,
		mutualRepo:      mutualRepo,
		installmentRepo: installmentRepo,
		log:             log,
	}
}

// RemindDueSoon logs, per mutual, the payable installments due within the
// window starting now. One tenant's failure does not stop the sweep.
func (s *ReminderService) RemindDueSoon(ctx context.Context, window time.Duration) error {
	mutuals, err := s.mutualRepo.List(ctx, s.store)
	if err != nil {
		return customError.WrapOperationFailed(err)
	}

	now := time.Now().UTC()
	for _, mutual := range mutuals {
		sc := scope.Scope{MutualID: mutual.ID, CallerID: SchedulerCaller}
		err := s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
			installments, err := s.installmentRepo.ListDueBetween(ctx, q, now, now.Add(window))
			if err != nil {
				return customError.WrapOperationFailed(err)
			}

			count := 0
			total := decimal.Zero
			for _, installment := range installments {
				if !installment.Payable() {
					continue
				}
				count++
				total = total.Add(installment.RemainingBalance())
			}
			if count == 0 {
				return nil
			}

			s.log.WithFields(logrus.Fields{
				"mutual_id": mutual.ID,
				"due_count": count,
				"due_total": total,
			}).Info("installments due soon")
			return nil
		})
		if err != nil {
			s.log.WithField("mutual_id", mutual.ID).WithError(err).Warn("due-soon sweep failed for mutual")
		}
	}

	return nil
}
