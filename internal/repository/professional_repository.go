package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfessionalRepository struct {
	*base.Repository
}

func NewProfessionalRepository(pool *pgxpool.Pool) *ProfessionalRepository {
	return &ProfessionalRepository{Repository: base.NewRepository(pool)}
}

const professionalColumns = `
	id, enterprise_id, name,
	available_from_week_day, available_to_week_day,
	available_from_time::text, available_to_time::text,
	created_at, updated_at
`

func scanProfessional(row pgx.Row) (*model.Professional, error) {
	var p model.Professional
	err := row.Scan(
		&p.ID,
		&p.EnterpriseID,
		&p.Name,
		&p.WorkingHours.WeekdayFrom,
		&p.WorkingHours.WeekdayTo,
		&p.WorkingHours.TimeFrom,
		&p.WorkingHours.TimeTo,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const (
	professionalInsertQuery = `
		INSERT INTO professionals (
			enterprise_id, name,
			available_from_week_day, available_to_week_day,
			available_from_time, available_to_time
		)
		VALUES ($1, $2, $3, $4, $5::text::time, $6::text::time)
		RETURNING id, created_at, updated_at
	`

	professionalUpdateHoursQuery = `
		UPDATE professionals
		SET available_from_week_day = $1,
		    available_to_week_day = $2,
		    available_from_time = $3::text::time,
		    available_to_time = $4::text::time,
		    updated_at = NOW()
		WHERE id = $5
	`
)

// Create создаёт специалиста
func (r *ProfessionalRepository) Create(ctx context.Context, p *model.Professional) error {
	err := r.DB().QueryRow(
		ctx, professionalInsertQuery,
		p.EnterpriseID,
		p.Name,
		p.WorkingHours.WeekdayFrom,
		p.WorkingHours.WeekdayTo,
		p.WorkingHours.TimeFrom,
		p.WorkingHours.TimeTo,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create professional: %w", err)
	}

	return nil
}

// GetByID получает специалиста по ID
func (r *ProfessionalRepository) GetByID(ctx context.Context, id int64) (*model.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE id = $1`

	p, err := scanProfessional(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get professional by id: %w", err)
	}

	return p, nil
}

// UpdateWorkingHours обновляет недельное окно работы специалиста
func (r *ProfessionalRepository) UpdateWorkingHours(ctx context.Context, id int64, hours model.WorkingHours) error {
	affected, err := r.ExecAffected(ctx, professionalUpdateHoursQuery,
		hours.WeekdayFrom,
		hours.WeekdayTo,
		hours.TimeFrom,
		hours.TimeTo,
		id,
	)
	if err != nil {
		return fmt.Errorf("update working hours: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("professional not found")
	}

	return nil
}
