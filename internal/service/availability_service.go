package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/availability"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository"
	"go.uber.org/zap"
)

type AvailabilityService struct {
	enterprises   EnterpriseStore
	professionals ProfessionalStore
	services      ServiceStore
	appointments  repository.AppointmentStore
	evaluator     *availability.Evaluator
	logger        *zap.Logger
}

func NewAvailabilityService(
	enterprises EnterpriseStore,
	professionals ProfessionalStore,
	services ServiceStore,
	appointments repository.AppointmentStore,
	evaluator *availability.Evaluator,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		enterprises:   enterprises,
		professionals: professionals,
		services:      services,
		appointments:  appointments,
		evaluator:     evaluator,
		logger:        logger,
	}
}

// dayContext - справочные данные для расчёта слотов специалиста
type dayContext struct {
	professional *model.Professional
	enterprise   *model.Enterprise
	service      *model.Service // nil если услуга не выбрана
}

func (s *AvailabilityService) loadDayContext(ctx context.Context, professionalID int64, serviceID *int64) (*dayContext, error) {
	professional, err := s.professionals.GetByID(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("get professional: %w", err)
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	enterprise, err := s.enterprises.GetByID(ctx, professional.EnterpriseID)
	if err != nil {
		return nil, fmt.Errorf("get enterprise: %w", err)
	}
	if enterprise == nil {
		return nil, ErrEnterpriseNotFound
	}

	dc := &dayContext{professional: professional, enterprise: enterprise}

	if serviceID != nil {
		svc, err := s.services.GetByID(ctx, *serviceID)
		if err != nil {
			return nil, fmt.Errorf("get service: %w", err)
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		if svc.EnterpriseID != professional.EnterpriseID {
			return nil, ErrEnterpriseMismatch
		}
		dc.service = svc
	}

	return dc, nil
}

// evaluate считает слоты дня по записям из store.
// store может быть транзакционным, тогда записи читаются под блокировкой дня
func (s *AvailabilityService) evaluate(ctx context.Context, store repository.AppointmentStore, dc *dayContext, date string, excludeID int64) ([]model.SlotCandidate, error) {
	day, err := availability.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	appointments, err := store.ListByProfessionalAndDate(ctx, dc.professional.ID, date)
	if err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}

	query := availability.Query{
		WorkingHours:         dc.professional.WorkingHours,
		Interval:             dc.enterprise.Interval,
		Date:                 day,
		Appointments:         appointments,
		ExcludeAppointmentID: excludeID,
	}
	if dc.service != nil {
		query.ServiceDuration = dc.service.DurationInMinutes
	}

	candidates, err := s.evaluator.Evaluate(query)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidWorkingHours) {
			s.logger.Error("Professional has broken working hours",
				zap.Int64("professional_id", dc.professional.ID),
				zap.Error(err),
			)
			return nil, ErrInvalidWorkingHours
		}
		return nil, fmt.Errorf("evaluate slots: %w", err)
	}

	return candidates, nil
}

// GetAvailableTimes возвращает слоты специалиста на дату.
// serviceID опционален, без него каждый слот считается одиночным
func (s *AvailabilityService) GetAvailableTimes(ctx context.Context, professionalID int64, date string, serviceID *int64) ([]model.SlotCandidate, error) {
	if _, err := availability.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	dc, err := s.loadDayContext(ctx, professionalID, serviceID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.evaluate(ctx, s.appointments, dc, date, 0)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Available times computed",
		zap.Int64("professional_id", professionalID),
		zap.String("date", date),
		zap.Int("slots", len(candidates)),
	)

	return candidates, nil
}

// IsTimeAvailable повторяет расчёт и проверяет что время присутствует и свободно
func (s *AvailabilityService) IsTimeAvailable(ctx context.Context, professionalID int64, date, timeOfDay string, serviceID *int64) (bool, error) {
	if _, err := availability.NormalizeTimeOfDay(timeOfDay); err != nil {
		return false, ErrInvalidTime
	}

	candidates, err := s.GetAvailableTimes(ctx, professionalID, date, serviceID)
	if err != nil {
		return false, err
	}

	return availability.IsAvailable(candidates, timeOfDay), nil
}
