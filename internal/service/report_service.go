package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/repository"
	"github.com/mfiguera/credimutual/internal/scope"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// ReportService builds the cancellation period report: a read-only,
// period-grouped partition of the tenant's installments into paid and
// not-paid with totals.
type ReportService struct {
	session         scope.Runner
	installmentRepo repository.InstallmentRepository
	redis           *redis.Client
	cacheTTL        time.Duration
	log             *logrus.Logger
}

func NewReportService(
	session scope.Runner,
	installmentRepo repository.InstallmentRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	log *logrus.Logger,
) *ReportService {
	return &ReportService{
		session:         session,
		installmentRepo: installmentRepo,
		redis:           redisClient,
		cacheTTL:        cacheTTL,
		log:             log,
	}
}

// CancellationReport partitions the installments due in the given period
// (YYYY-MM) into paid and not-paid with per-partition and grand totals.
// Results are cached per (mutual, period) for a short TTL; cache failures
// fall through to the store.
func (s *ReportService) CancellationReport(ctx context.Context, sc scope.Scope, period string) (*domain.CancellationReport, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return nil, customError.WrapInvalidConfiguration(fmt.Sprintf("period %q is not in YYYY-MM form", period))
	}
	end := start.AddDate(0, 1, 0)

	cacheKey := fmt.Sprintf("report:cancellation:%d:%s", sc.MutualID, period)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	report := &domain.CancellationReport{
		Period:       period,
		Paid:         []*domain.Installment{},
		NotPaid:      []*domain.Installment{},
		PaidTotal:    decimal.Zero,
		NotPaidTotal: decimal.Zero,
	}
	err = s.session.Run(ctx, sc, func(ctx context.Context, q repository.Queryer) error {
		installments, err := s.installmentRepo.ListDueBetween(ctx, q, start, end)
		if err != nil {
			return customError.WrapOperationFailed(err)
		}

		for _, installment := range installments {
			if installment.Status == domain.InstallmentStatusPaid {
				report.Paid = append(report.Paid, installment)
				report.PaidTotal = report.PaidTotal.Add(installment.TotalAmount)
			} else {
				report.NotPaid = append(report.NotPaid, installment)
				report.NotPaidTotal = report.NotPaidTotal.Add(installment.TotalAmount)
			}
		}
		report.GrandTotal = report.PaidTotal.Add(report.NotPaidTotal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, cacheKey, report)
	return report, nil
}

func (s *ReportService) fromCache(ctx context.Context, key string) *domain.CancellationReport {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.WithError(err).Debug("report cache read failed")
		}
		return nil
	}

	var report domain.CancellationReport
	if err := json.Unmarshal(raw, &report); err != nil {
		s.log.WithError(err).Debug("report cache entry corrupt, ignoring")
		return nil
	}
	return &report
}

func (s *ReportService) toCache(ctx context.Context, key string, report *domain.CancellationReport) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.log.WithError(err).Debug("report cache write failed")
	}
}
