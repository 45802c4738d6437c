package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Хранилища, с которыми работают сервисы. Реализации в internal/repository

type EnterpriseStore interface {
	Create(ctx context.Context, enterprise *model.Enterprise) error
	GetByID(ctx context.Context, id int64) (*model.Enterprise, error)
}

type ProfessionalStore interface {
	Create(ctx context.Context, p *model.Professional) error
	GetByID(ctx context.Context, id int64) (*model.Professional, error)
	UpdateWorkingHours(ctx context.Context, id int64, hours model.WorkingHours) error
}

type ServiceStore interface {
	Create(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id int64) (*model.Service, error)
}

type ClientStore interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error)
	MarkVerified(ctx context.Context, id int64, verifiedAt time.Time, telegramID *int64) error
}

type VerificationCodeStore interface {
	Create(ctx context.Context, code *model.VerificationCode) error
	GetLatestActive(ctx context.Context, phone string, now time.Time) (*model.VerificationCode, error)
	Consume(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput проверяет структуру по тегам validate.
// Ошибка несёт и ErrInvalidInput, и validator.ValidationErrors
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}
