package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnterpriseRepository struct {
	*base.Repository
}

func NewEnterpriseRepository(pool *pgxpool.Pool) *EnterpriseRepository {
	return &EnterpriseRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт предприятие. Интервал больше не меняется после создания
func (r *EnterpriseRepository) Create(ctx context.Context, enterprise *model.Enterprise) error {
	query := `
		INSERT INTO enterprises (name, slot_interval)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.DB().QueryRow(ctx, query, enterprise.Name, enterprise.Interval).
		Scan(&enterprise.ID, &enterprise.CreatedAt)
	if err != nil {
		return fmt.Errorf("create enterprise: %w", err)
	}

	return nil
}

// GetByID получает предприятие по ID
func (r *EnterpriseRepository) GetByID(ctx context.Context, id int64) (*model.Enterprise, error) {
	query := `
		SELECT id, name, slot_interval, created_at
		FROM enterprises
		WHERE id = $1
	`

	var enterprise model.Enterprise
	err := r.DB().QueryRow(ctx, query, id).Scan(
		&enterprise.ID,
		&enterprise.Name,
		&enterprise.Interval,
		&enterprise.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enterprise by id: %w", err)
	}

	return &enterprise, nil
}
