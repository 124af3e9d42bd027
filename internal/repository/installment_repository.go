package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mfiguera/credimutual/internal/domain"
)

type installmentRepository struct{}

func NewInstallmentRepository() InstallmentRepository {
	return &installmentRepository{}
}

func (r *installmentRepository) CreateBatch(ctx context.Context, q Queryer, installments []*domain.Installment) error {
	query := `
		INSERT INTO installments (id, mutual_id, credit_id, number, due_date, total_amount, amount_paid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, installment := range installments {
		_, err := q.ExecContext(ctx, query,
			installment.ID,
			installment.MutualID,
			installment.CreditID,
			installment.Number,
			installment.DueDate,
			installment.TotalAmount,
			installment.AmountPaid,
			installment.Status,
			installment.CreatedAt,
			installment.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *installmentRepository) ListByCredit(ctx context.Context, q Queryer, creditID uuid.UUID) ([]*domain.Installment, error) {
	query := `
		SELECT id, mutual_id, credit_id, number, due_date, total_amount, amount_paid, status, created_at, updated_at
		FROM installments
		WHERE credit_id = $1
		ORDER BY number
	`

	var installments []*domain.Installment
	if err := q.SelectContext(ctx, &installments, query, creditID); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) ListForUpdate(ctx context.Context, q Queryer, ids []uuid.UUID) ([]*domain.Installment, error) {
	query := `
		SELECT id, mutual_id, credit_id, number, due_date, total_amount, amount_paid, status, created_at, updated_at
		FROM installments
		WHERE id = ANY($1::uuid[])
		ORDER BY due_date, number
		FOR UPDATE
	`

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	var installments []*domain.Installment
	if err := q.SelectContext(ctx, &installments, query, pq.Array(raw)); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) ListDueBetween(ctx context.Context, q Queryer, from, to time.Time) ([]*domain.Installment, error) {
	query := `
		SELECT id, mutual_id, credit_id, number, due_date, total_amount, amount_paid, status, created_at, updated_at
		FROM installments
		WHERE due_date >= $1 AND due_date < $2
		ORDER BY due_date, number
	`

	var installments []*domain.Installment
	if err := q.SelectContext(ctx, &installments, query, from, to); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) Update(ctx context.Context, q Queryer, installment *domain.Installment) error {
	query := `
		UPDATE installments
		SET amount_paid = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := q.ExecContext(ctx, query,
		installment.ID,
		installment.AmountPaid,
		installment.Status,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
