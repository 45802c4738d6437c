package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/agenda/internal/availability"
	"github.com/Freeeeeet/agenda/internal/events"
	"github.com/Freeeeeet/agenda/internal/locker"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository"
	"go.uber.org/zap"
)

type CreateAppointmentInput struct {
	ProfessionalID int64  `json:"professional_id" validate:"required,gt=0"`
	ClientID       int64  `json:"client_id" validate:"required,gt=0"`
	ServiceID      int64  `json:"service_id" validate:"required,gt=0"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required"`
}

type RescheduleAppointmentInput struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required"`
	// ServiceID 0 - оставить текущую услугу
	ServiceID int64 `json:"service_id" validate:"gte=0"`
}

// BookingService создаёт и меняет записи, перепроверяя доступность прямо перед сохранением
type BookingService struct {
	availability *AvailabilityService
	appointments repository.AppointmentStore
	clients      ClientStore
	locker       locker.Locker
	publisher    events.Publisher
	lockTTL      time.Duration
	logger       *zap.Logger
}

func NewBookingService(
	availabilityService *AvailabilityService,
	appointments repository.AppointmentStore,
	clients ClientStore,
	dayLocker locker.Locker,
	publisher events.Publisher,
	lockTTL time.Duration,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		availability: availabilityService,
		appointments: appointments,
		clients:      clients,
		locker:       dayLocker,
		publisher:    publisher,
		lockTTL:      lockTTL,
		logger:       logger,
	}
}

// CreateAppointment бронирует время для клиента
func (s *BookingService) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*model.Appointment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	startValue, err := availability.NormalizeTimeOfDay(input.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}

	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	serviceID := input.ServiceID
	dc, err := s.availability.loadDayContext(ctx, input.ProfessionalID, &serviceID)
	if err != nil {
		return nil, err
	}
	if client.EnterpriseID != dc.professional.EnterpriseID {
		return nil, ErrEnterpriseMismatch
	}

	appt := &model.Appointment{
		EnterpriseID:             dc.professional.EnterpriseID,
		ProfessionalID:           dc.professional.ID,
		ClientID:                 client.ID,
		ServiceID:                dc.service.ID,
		Date:                     input.Date,
		Status:                   model.AppointmentStatusScheduled,
		ServiceDurationInMinutes: dc.service.DurationInMinutes,
	}
	setWindow(appt, startValue, dc.service.DurationInMinutes)

	err = s.withDayLock(ctx, dc.professional.ID, input.Date, 0, dc, startValue, func(ctx context.Context, store repository.AppointmentStore) error {
		if err := store.Create(ctx, appt); err != nil {
			if errors.Is(err, repository.ErrDuplicateStart) {
				return ErrSlotTaken
			}
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment created",
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("professional_id", appt.ProfessionalID),
		zap.Int64("client_id", appt.ClientID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
	)

	s.publish(ctx, events.AppointmentCreated, appt)
	return appt, nil
}

// RescheduleAppointment переносит активную запись. Сама запись при проверке не учитывается
func (s *BookingService) RescheduleAppointment(ctx context.Context, id int64, input RescheduleAppointmentInput) (*model.Appointment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	startValue, err := availability.NormalizeTimeOfDay(input.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}

	appt, err := s.getActive(ctx, s.appointments, id)
	if err != nil {
		return nil, err
	}

	serviceID := appt.ServiceID
	if input.ServiceID > 0 {
		serviceID = input.ServiceID
	}

	dc, err := s.availability.loadDayContext(ctx, appt.ProfessionalID, &serviceID)
	if err != nil {
		return nil, err
	}

	var updated *model.Appointment
	err = s.withDayLock(ctx, appt.ProfessionalID, input.Date, appt.ID, dc, startValue, func(ctx context.Context, store repository.AppointmentStore) error {
		// Запись могли отменить пока ждали блокировку
		current, err := s.getActive(ctx, store, id)
		if err != nil {
			return err
		}

		current.ServiceID = dc.service.ID
		current.ServiceDurationInMinutes = dc.service.DurationInMinutes
		current.Date = input.Date
		setWindow(current, startValue, dc.service.DurationInMinutes)

		if err := store.UpdateSchedule(ctx, current); err != nil {
			if errors.Is(err, repository.ErrDuplicateStart) {
				return ErrSlotTaken
			}
			return fmt.Errorf("reschedule appointment: %w", err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment rescheduled",
		zap.Int64("appointment_id", updated.ID),
		zap.String("date", updated.Date),
		zap.String("time", updated.Time),
	)

	s.publish(ctx, events.AppointmentRescheduled, updated)
	return updated, nil
}

// CancelAppointment отменяет запись. Повторная отмена не ошибка
func (s *BookingService) CancelAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.IsCanceled() {
		return appt, nil
	}
	if !appt.IsActive() {
		return nil, ErrAppointmentNotActive
	}

	if err := s.appointments.UpdateStatus(ctx, id, model.AppointmentStatusCanceled); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	appt.Status = model.AppointmentStatusCanceled

	s.logger.Info("Appointment canceled", zap.Int64("appointment_id", id))

	s.publish(ctx, events.AppointmentCanceled, appt)
	return appt, nil
}

// CompleteAppointment отмечает запись завершённой
func (s *BookingService) CompleteAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Status == model.AppointmentStatusCompleted {
		return appt, nil
	}
	if !appt.IsActive() {
		return nil, ErrAppointmentNotActive
	}

	if err := s.appointments.UpdateStatus(ctx, id, model.AppointmentStatusCompleted); err != nil {
		return nil, fmt.Errorf("complete appointment: %w", err)
	}
	appt.Status = model.AppointmentStatusCompleted

	s.logger.Info("Appointment completed", zap.Int64("appointment_id", id))
	return appt, nil
}

// ListProfessionalAppointments возвращает все записи специалиста на дату
func (s *BookingService) ListProfessionalAppointments(ctx context.Context, professionalID int64, date string) ([]*model.Appointment, error) {
	if _, err := availability.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.availability.loadDayContext(ctx, professionalID, nil); err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListByProfessionalAndDate(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return appointments, nil
}

// withDayLock берёт блокировку Redis, затем транзакционную блокировку дня в базе,
// перепроверяет слот и только потом вызывает write
func (s *BookingService) withDayLock(
	ctx context.Context,
	professionalID int64,
	date string,
	excludeID int64,
	dc *dayContext,
	startValue string,
	write func(ctx context.Context, store repository.AppointmentStore) error,
) error {
	key := locker.AppointmentDayKey(professionalID, date)

	acquired, token, err := s.locker.TryLock(ctx, key, s.lockTTL)
	if err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}
	if !acquired {
		return ErrSlotBusy
	}
	defer func() {
		// Контекст запроса мог истечь, снимаем блокировку независимо от него
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := s.locker.Unlock(unlockCtx, key, token); err != nil {
			s.logger.Warn("Failed to release booking lock", zap.String("key", key), zap.Error(err))
		}
	}()

	return s.appointments.WithinDayLock(ctx, professionalID, date, func(ctx context.Context, store repository.AppointmentStore) error {
		candidates, err := s.availability.evaluate(ctx, store, dc, date, excludeID)
		if err != nil {
			return err
		}
		if !availability.IsAvailable(candidates, startValue) {
			return ErrSlotUnavailable
		}
		return write(ctx, store)
	})
}

func (s *BookingService) get(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}

func (s *BookingService) getActive(ctx context.Context, store repository.AppointmentStore, id int64) (*model.Appointment, error) {
	appt, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appt.IsActive() {
		return nil, ErrAppointmentNotActive
	}
	return appt, nil
}

// publish не влияет на результат операции, запись уже сохранена
func (s *BookingService) publish(ctx context.Context, eventType string, appt *model.Appointment) {
	if err := s.publisher.Publish(ctx, eventType, events.NewAppointmentPayload(appt)); err != nil {
		s.logger.Error("Failed to publish appointment event",
			zap.String("type", eventType),
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err),
		)
	}
}

// setWindow фиксирует окно записи: начало и конец по длительности услуги.
// Окно до полуночи и дальше хранится без end_time и обрезается при расчёте
func setWindow(appt *model.Appointment, startValue string, durationInMinutes int) {
	start, _ := availability.ParseTimeOfDay(startValue)
	end := start + durationInMinutes

	appt.Time = startValue
	appt.StartTime = &startValue
	appt.EndTime = nil
	if end < availability.MinutesPerDay {
		endValue := availability.FormatTimeOfDay(end)
		appt.EndTime = &endValue
	}
}
