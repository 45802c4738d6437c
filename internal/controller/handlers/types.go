package handlers

import (
	"context"

	"github.com/Freeeeeet/agenda/internal/controller/state"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/service"
	"go.uber.org/zap"
)

type SlotsService interface {
	GetAvailableTimes(ctx context.Context, professionalID int64, date string, serviceID *int64) ([]model.SlotCandidate, error)
}

type BookingService interface {
	CreateAppointment(ctx context.Context, input service.CreateAppointmentInput) (*model.Appointment, error)
}

type ClientDirectory interface {
	GetClientByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error)
	GetProfessional(ctx context.Context, id int64) (*model.Professional, error)
}

type VerificationService interface {
	RequestCode(ctx context.Context, input service.RequestCodeInput) (*model.VerificationCode, error)
	LinkTelegram(ctx context.Context, input service.VerifyCodeInput, telegramID int64) (*model.Client, error)
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	slots        SlotsService
	booking      BookingService
	clients      ClientDirectory
	verification VerificationService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	slots SlotsService,
	booking BookingService,
	clients ClientDirectory,
	verification VerificationService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		slots:        slots,
		booking:      booking,
		clients:      clients,
		verification: verification,
		stateManager: stateManager,
		logger:       logger,
	}
}
