package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfiguera/credimutual/internal/domain"
)

type paymentRepository struct{}

func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(ctx context.Context, q Queryer, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, mutual_id, amount, paid_at, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.ExecContext(ctx, query,
		payment.ID,
		payment.MutualID,
		payment.Amount,
		payment.PaidAt,
		payment.Reference,
		payment.CreatedBy,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) CreateLinks(ctx context.Context, q Queryer, links []*domain.PaymentInstallmentLink) error {
	query := `
		INSERT INTO payment_installment_links (id, mutual_id, payment_id, installment_id, amount)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, link := range links {
		_, err := q.ExecContext(ctx, query,
			link.ID,
			link.MutualID,
			link.PaymentID,
			link.InstallmentID,
			link.Amount,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *paymentRepository) ListByInstallment(ctx context.Context, q Queryer, installmentID uuid.UUID) ([]*domain.PaymentInstallmentLink, error) {
	query := `
		SELECT id, mutual_id, payment_id, installment_id, amount
		FROM payment_installment_links
		WHERE installment_id = $1
		ORDER BY id
	`

	var links []*domain.PaymentInstallmentLink
	if err := q.SelectContext(ctx, &links, query, installmentID); err != nil {
		return nil, err
	}

	return links, nil
}
