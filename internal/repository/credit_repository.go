package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mfiguera/credimutual/internal/domain"
)

type creditRepository struct{}

func NewCreditRepository() CreditRepository {
	return &creditRepository{}
}

func (r *creditRepository) Create(ctx context.Context, q Queryer, credit *domain.Credit) error {
	query := `
		INSERT INTO credits (id, mutual_id, associate_id, product_id, principal, periodic_rate, installment_count, due_day, due_date_rule, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := q.ExecContext(ctx, query,
		credit.ID,
		credit.MutualID,
		credit.AssociateID,
		credit.ProductID,
		credit.Principal,
		credit.PeriodicRate,
		credit.InstallmentCount,
		credit.DueDay,
		credit.DueDateRule,
		credit.Status,
		credit.Notes,
		credit.CreatedAt,
		credit.UpdatedAt,
	)

	return err
}

func (r *creditRepository) GetByID(ctx context.Context, q Queryer, id uuid.UUID) (*domain.Credit, error) {
	query := `
		SELECT id, mutual_id, associate_id, product_id, principal, periodic_rate, installment_count, due_day, due_date_rule, status, notes, created_at, updated_at
		FROM credits
		WHERE id = $1
	`

	var credit domain.Credit
	if err := q.GetContext(ctx, &credit, query, id); err != nil {
		return nil, err
	}

	return &credit, nil
}

func (r *creditRepository) ListByAssociate(ctx context.Context, q Queryer, associateID uuid.UUID) ([]*domain.Credit, error) {
	query := `
		SELECT id, mutual_id, associate_id, product_id, principal, periodic_rate, installment_count, due_day, due_date_rule, status, notes, created_at, updated_at
		FROM credits
		WHERE associate_id = $1
		ORDER BY created_at DESC
	`

	var credits []*domain.Credit
	if err := q.SelectContext(ctx, &credits, query, associateID); err != nil {
		return nil, err
	}

	return credits, nil
}

func (r *creditRepository) UpdateStatus(ctx context.Context, q Queryer, id uuid.UUID, status string) error {
	query := `
		UPDATE credits
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := q.ExecContext(ctx, query, id, status, time.Now().UTC())
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
