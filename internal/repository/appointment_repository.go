package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateStart - у специалиста уже есть активная запись на это начало
var ErrDuplicateStart = errors.New("appointment start already taken")

// AppointmentStore - операции с записями, которые можно выполнять
// как через пул, так и внутри блокировки дня специалиста
type AppointmentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	ListByProfessionalAndDate(ctx context.Context, professionalID int64, date string) ([]*model.Appointment, error)
	Create(ctx context.Context, appt *model.Appointment) error
	UpdateSchedule(ctx context.Context, appt *model.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	// WithinDayLock выполняет fn в транзакции, удерживая advisory lock
	// на пару (специалист, дата)
	WithinDayLock(ctx context.Context, professionalID int64, date string, fn func(ctx context.Context, store AppointmentStore) error) error
}

type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(pool)}
}

const (
	// $1 - bigint, в ключ попадает его текстовая форма "10:2026-10-14"
	appointmentDayLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1::bigint::text || ':' || $2::text, 0))`

	appointmentInsertQuery = `
		INSERT INTO appointments (
			enterprise_id, professional_id, client_id, service_id,
			date, time, start_time, end_time, status
		)
		VALUES ($1, $2, $3, $4, $5::text::date, $6::text::time, $7::text::time, $8::text::time, $9)
		RETURNING id, created_at, updated_at
	`

	appointmentUpdateScheduleQuery = `
		UPDATE appointments
		SET service_id = $1,
		    date = $2::text::date,
		    time = $3::text::time,
		    start_time = $4::text::time,
		    end_time = $5::text::time,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	appointmentUpdateStatusQuery = `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
)

const appointmentSelect = `
	SELECT a.id, a.enterprise_id, a.professional_id, a.client_id, a.service_id,
	       to_char(a.date, 'YYYY-MM-DD'), a.time::text, a.start_time::text, a.end_time::text,
	       a.status, a.created_at, a.updated_at,
	       COALESCE(s.duration_in_minutes, 0)
	FROM appointments a
	LEFT JOIN services s ON s.id = a.service_id
`

const appointmentListByDayQuery = appointmentSelect + `
	WHERE a.professional_id = $1 AND a.date = $2::text::date
	ORDER BY a.time
`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(
		&a.ID,
		&a.EnterpriseID,
		&a.ProfessionalID,
		&a.ClientID,
		&a.ServiceID,
		&a.Date,
		&a.Time,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.ServiceDurationInMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// WithinDayLock сериализует запись на один день одного специалиста между
// всеми экземплярами сервиса
func (r *AppointmentRepository) WithinDayLock(ctx context.Context, professionalID int64, date string, fn func(ctx context.Context, store AppointmentStore) error) error {
	return r.WithTx(ctx, func(ctx context.Context, txRepo *base.Repository) error {
		store := &AppointmentRepository{Repository: txRepo}

		_, err := txRepo.DB().Exec(ctx, appointmentDayLockQuery, professionalID, date)
		if err != nil {
			return fmt.Errorf("acquire day lock: %w", err)
		}

		return fn(ctx, store)
	})
}

// Create создаёт запись
func (r *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	err := r.DB().QueryRow(
		ctx, appointmentInsertQuery,
		appt.EnterpriseID,
		appt.ProfessionalID,
		appt.ClientID,
		appt.ServiceID,
		appt.Date,
		appt.Time,
		appt.StartTime,
		appt.EndTime,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateStart
		}
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = $1`

	appt, err := scanAppointment(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return appt, nil
}

// ListByProfessionalAndDate получает все записи специалиста на дату, включая отменённые
func (r *AppointmentRepository) ListByProfessionalAndDate(ctx context.Context, professionalID int64, date string) ([]*model.Appointment, error) {
	rows, err := r.DB().Query(ctx, appointmentListByDayQuery, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("get appointments by professional: %w", err)
	}
	defer rows.Close()

	appointments := make([]*model.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}

// UpdateSchedule переносит запись на новые дату/время/услугу
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, appt *model.Appointment) error {
	err := r.DB().QueryRow(
		ctx, appointmentUpdateScheduleQuery,
		appt.ServiceID,
		appt.Date,
		appt.Time,
		appt.StartTime,
		appt.EndTime,
		appt.ID,
	).Scan(&appt.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("appointment not found")
		}
		if base.IsUniqueViolation(err) {
			return ErrDuplicateStart
		}
		return fmt.Errorf("update appointment schedule: %w", err)
	}

	return nil
}

// UpdateStatus обновляет статус записи
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	affected, err := r.ExecAffected(ctx, appointmentUpdateStatusQuery, status, id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateStart
		}
		return fmt.Errorf("update appointment status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}
