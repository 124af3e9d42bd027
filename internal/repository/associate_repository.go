package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfiguera/credimutual/internal/domain"
)

type associateRepository struct{}

func NewAssociateRepository() AssociateRepository {
	return &associateRepository{}
}

func (r *associateRepository) Create(ctx context.Context, q Queryer, associate *domain.Associate) error {
	query := `
		INSERT INTO associates (id, mutual_id, full_name, document, wallet_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.ExecContext(ctx, query,
		associate.ID,
		associate.MutualID,
		associate.FullName,
		associate.Document,
		associate.WalletBalance,
		associate.CreatedAt,
	)

	return err
}

func (r *associateRepository) GetByID(ctx context.Context, q Queryer, id uuid.UUID) (*domain.Associate, error) {
	query := `
		SELECT id, mutual_id, full_name, document, wallet_balance, created_at
		FROM associates
		WHERE id = $1
	`

	var associate domain.Associate
	if err := q.GetContext(ctx, &associate, query, id); err != nil {
		return nil, err
	}

	return &associate, nil
}

func (r *associateRepository) List(ctx context.Context, q Queryer) ([]*domain.Associate, error) {
	query := `
		SELECT id, mutual_id, full_name, document, wallet_balance, created_at
		FROM associates
		ORDER BY full_name
	`

	var associates []*domain.Associate
	if err := q.SelectContext(ctx, &associates, query); err != nil {
		return nil, err
	}

	return associates, nil
}

func (r *associateRepository) AddToWallet(ctx context.Context, q Queryer, id uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE associates
		SET wallet_balance = wallet_balance + $2
		WHERE id = $1
	`

	result, err := q.ExecContext(ctx, query, id, amount)
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
