package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/agenda/internal/availability"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository"
	"go.uber.org/zap"
)

type CreateEnterpriseInput struct {
	Name string `json:"name" validate:"required,max=200"`
	// Interval как ввёл владелец: "30", "1h", "45min". Пусто - 30 минут
	Interval *string `json:"interval" validate:"omitempty,max=32"`
}

type WorkingHoursInput struct {
	WeekdayFrom int    `json:"available_from_week_day" validate:"gte=0,lte=6"`
	WeekdayTo   int    `json:"available_to_week_day" validate:"gte=0,lte=6"`
	TimeFrom    string `json:"available_from_time" validate:"required"`
	TimeTo      string `json:"available_to_time" validate:"required"`
}

type CreateProfessionalInput struct {
	Name         string            `json:"name" validate:"required,max=200"`
	WorkingHours WorkingHoursInput `json:"working_hours"`
}

type CreateServiceInput struct {
	Name              string `json:"name" validate:"required,max=200"`
	DurationInMinutes int    `json:"duration_in_minutes" validate:"gt=0,lte=1440"`
	PriceCents        int    `json:"price_cents" validate:"gte=0"`
}

type CreateClientInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,e164"`
}

// CatalogService управляет справочниками предприятия
type CatalogService struct {
	enterprises   EnterpriseStore
	professionals ProfessionalStore
	services      ServiceStore
	clients       ClientStore
	logger        *zap.Logger
}

func NewCatalogService(
	enterprises EnterpriseStore,
	professionals ProfessionalStore,
	services ServiceStore,
	clients ClientStore,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		enterprises:   enterprises,
		professionals: professionals,
		services:      services,
		clients:       clients,
		logger:        logger,
	}
}

// CreateEnterprise создаёт предприятие. Интервал сохраняется как ввели,
// нормализуется при каждом расчёте и после создания не меняется
func (s *CatalogService) CreateEnterprise(ctx context.Context, input CreateEnterpriseInput) (*model.Enterprise, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var interval *string
	if input.Interval != nil && strings.TrimSpace(*input.Interval) != "" {
		v := strings.TrimSpace(*input.Interval)
		interval = &v
	}

	enterprise := &model.Enterprise{
		Name:     strings.TrimSpace(input.Name),
		Interval: interval,
	}

	if err := s.enterprises.Create(ctx, enterprise); err != nil {
		return nil, fmt.Errorf("create enterprise: %w", err)
	}

	s.logger.Info("Enterprise created",
		zap.Int64("enterprise_id", enterprise.ID),
		zap.Int("slot_interval", availability.ParseSlotInterval(enterprise.Interval).Minutes()),
	)

	return enterprise, nil
}

// CreateProfessional добавляет специалиста в предприятие
func (s *CatalogService) CreateProfessional(ctx context.Context, enterpriseID int64, input CreateProfessionalInput) (*model.Professional, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hours, err := normalizeWorkingHours(input.WorkingHours)
	if err != nil {
		return nil, err
	}

	if err := s.requireEnterprise(ctx, enterpriseID); err != nil {
		return nil, err
	}

	professional := &model.Professional{
		EnterpriseID: enterpriseID,
		Name:         strings.TrimSpace(input.Name),
		WorkingHours: hours,
	}

	if err := s.professionals.Create(ctx, professional); err != nil {
		return nil, fmt.Errorf("create professional: %w", err)
	}

	s.logger.Info("Professional created",
		zap.Int64("professional_id", professional.ID),
		zap.Int64("enterprise_id", enterpriseID),
	)

	return professional, nil
}

// UpdateWorkingHours - единственный способ изменить рабочее окно специалиста
func (s *CatalogService) UpdateWorkingHours(ctx context.Context, professionalID int64, input WorkingHoursInput) (*model.Professional, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hours, err := normalizeWorkingHours(input)
	if err != nil {
		return nil, err
	}

	professional, err := s.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	if err := s.professionals.UpdateWorkingHours(ctx, professionalID, hours); err != nil {
		return nil, fmt.Errorf("update working hours: %w", err)
	}
	professional.WorkingHours = hours

	s.logger.Info("Working hours updated",
		zap.Int64("professional_id", professionalID),
		zap.Int("weekday_from", hours.WeekdayFrom),
		zap.Int("weekday_to", hours.WeekdayTo),
		zap.String("time_from", hours.TimeFrom),
		zap.String("time_to", hours.TimeTo),
	)

	return professional, nil
}

// CreateService добавляет услугу
func (s *CatalogService) CreateService(ctx context.Context, enterpriseID int64, input CreateServiceInput) (*model.Service, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.requireEnterprise(ctx, enterpriseID); err != nil {
		return nil, err
	}

	svc := &model.Service{
		EnterpriseID:      enterpriseID,
		Name:              strings.TrimSpace(input.Name),
		DurationInMinutes: input.DurationInMinutes,
		PriceCents:        input.PriceCents,
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.logger.Info("Service created",
		zap.Int64("service_id", svc.ID),
		zap.Int64("enterprise_id", enterpriseID),
		zap.Int("duration", svc.DurationInMinutes),
	)

	return svc, nil
}

// CreateClient регистрирует клиента. Телефон уникален в пределах предприятия
func (s *CatalogService) CreateClient(ctx context.Context, enterpriseID int64, input CreateClientInput) (*model.Client, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.requireEnterprise(ctx, enterpriseID); err != nil {
		return nil, err
	}

	client := &model.Client{
		EnterpriseID: enterpriseID,
		Name:         strings.TrimSpace(input.Name),
		Phone:        input.Phone,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateClient) {
			return nil, ErrClientExists
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info("Client created",
		zap.Int64("client_id", client.ID),
		zap.Int64("enterprise_id", enterpriseID),
	)

	return client, nil
}

func (s *CatalogService) GetProfessional(ctx context.Context, id int64) (*model.Professional, error) {
	professional, err := s.professionals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get professional: %w", err)
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return professional, nil
}

// GetClientByTelegramID ищет клиента привязанного к аккаунту Telegram
func (s *CatalogService) GetClientByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	client, err := s.clients.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get client by telegram id: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (s *CatalogService) requireEnterprise(ctx context.Context, id int64) error {
	enterprise, err := s.enterprises.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get enterprise: %w", err)
	}
	if enterprise == nil {
		return ErrEnterpriseNotFound
	}
	return nil
}

// normalizeWorkingHours приводит время к HH:MM:SS и проверяет from < to
func normalizeWorkingHours(input WorkingHoursInput) (model.WorkingHours, error) {
	from, err := availability.ParseTimeOfDay(input.TimeFrom)
	if err != nil {
		return model.WorkingHours{}, fmt.Errorf("%w: available_from_time", ErrInvalidWorkingHours)
	}
	to, err := availability.ParseTimeOfDay(input.TimeTo)
	if err != nil {
		return model.WorkingHours{}, fmt.Errorf("%w: available_to_time", ErrInvalidWorkingHours)
	}
	if from >= to {
		return model.WorkingHours{}, fmt.Errorf("%w: time from must be before time to", ErrInvalidWorkingHours)
	}
	if input.WeekdayFrom > input.WeekdayTo {
		return model.WorkingHours{}, fmt.Errorf("%w: weekday range wraps around", ErrInvalidWorkingHours)
	}

	return model.WorkingHours{
		WeekdayFrom: input.WeekdayFrom,
		WeekdayTo:   input.WeekdayTo,
		TimeFrom:    availability.FormatTimeOfDay(from),
		TimeTo:      availability.FormatTimeOfDay(to),
	}, nil
}
