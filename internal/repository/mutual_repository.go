package repository

import (
	"context"

	"github.com/mfiguera/credimutual/internal/domain"
)

type mutualRepository struct{}

func NewMutualRepository() MutualRepository {
	return &mutualRepository{}
}

func (r *mutualRepository) Create(ctx context.Context, q Queryer, mutual *domain.Mutual) error {
	query := `
		INSERT INTO mutuals (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	return q.GetContext(ctx, mutual, query, mutual.Name)
}

func (r *mutualRepository) GetByID(ctx context.Context, q Queryer, id int64) (*domain.Mutual, error) {
	query := `
		SELECT id, name, created_at
		FROM mutuals
		WHERE id = $1
	`

	var mutual domain.Mutual
	if err := q.GetContext(ctx, &mutual, query, id); err != nil {
		return nil, err
	}

	return &mutual, nil
}

func (r *mutualRepository) List(ctx context.Context, q Queryer) ([]*domain.Mutual, error) {
	query := `
		SELECT id, name, created_at
		FROM mutuals
		ORDER BY id
	`

	var mutuals []*domain.Mutual
	if err := q.SelectContext(ctx, &mutuals, query); err != nil {
		return nil, err
	}

	return mutuals, nil
}
