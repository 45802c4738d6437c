package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ServiceRepository хранит услуги предприятий
type ServiceRepository struct {
	*base.Repository
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт услугу
func (r *ServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (enterprise_id, name, duration_in_minutes, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.DB().QueryRow(
		ctx, query,
		svc.EnterpriseID,
		svc.Name,
		svc.DurationInMinutes,
		svc.PriceCents,
	).Scan(&svc.ID, &svc.CreatedAt)

	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	return nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, enterprise_id, name, duration_in_minutes, price_cents, created_at
		FROM services
		WHERE id = $1
	`

	var svc model.Service
	err := r.DB().QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.EnterpriseID,
		&svc.Name,
		&svc.DurationInMinutes,
		&svc.PriceCents,
		&svc.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &svc, nil
}
