package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfiguera/credimutual/internal/domain"
)

type productRepository struct{}

func NewProductRepository() ProductRepository {
	return &productRepository{}
}

func (r *productRepository) Create(ctx context.Context, q Queryer, product *domain.Product) error {
	query := `
		INSERT INTO products (id, mutual_id, name, periodic_rate, installment_count, due_day, due_date_rule, commission_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.ExecContext(ctx, query,
		product.ID,
		product.MutualID,
		product.Name,
		product.PeriodicRate,
		product.InstallmentCount,
		product.DueDay,
		product.DueDateRule,
		product.CommissionRate,
		product.CreatedAt,
		product.UpdatedAt,
	)

	return err
}

func (r *productRepository) GetByID(ctx context.Context, q Queryer, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, mutual_id, name, periodic_rate, installment_count, due_day, due_date_rule, commission_rate, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	if err := q.GetContext(ctx, &product, query, id); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) List(ctx context.Context, q Queryer) ([]*domain.Product, error) {
	query := `
		SELECT id, mutual_id, name, periodic_rate, installment_count, due_day, due_date_rule, commission_rate, created_at, updated_at
		FROM products
		ORDER BY name
	`

	var products []*domain.Product
	if err := q.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}

	return products, nil
}
