package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Freeeeeet/agenda/internal/events"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository"
	"go.uber.org/zap"
)

const codeDigits = 6

type RequestCodeInput struct {
	ClientID int64  `json:"client_id" validate:"required,gt=0"`
	Phone    string `json:"phone" validate:"required,e164"`
}

type VerifyCodeInput struct {
	ClientID int64  `json:"client_id" validate:"required,gt=0"`
	Phone    string `json:"phone" validate:"required,e164"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
}

// VerificationService выдаёт и проверяет одноразовые коды подтверждения телефона.
// Коды живут в базе с ограниченным сроком
type VerificationService struct {
	codes     VerificationCodeStore
	clients   ClientStore
	publisher events.Publisher
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewVerificationService(
	codes VerificationCodeStore,
	clients ClientStore,
	publisher events.Publisher,
	ttl time.Duration,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{
		codes:     codes,
		clients:   clients,
		publisher: publisher,
		ttl:       ttl,
		now:       time.Now,
		logger:    logger,
	}
}

// RequestCode создаёт код для телефона клиента и отправляет событие внешнему отправителю
func (s *VerificationService) RequestCode(ctx context.Context, input RequestCodeInput) (*model.VerificationCode, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.clientWithPhone(ctx, input.ClientID, input.Phone); err != nil {
		return nil, err
	}

	value, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	code := &model.VerificationCode{
		Phone:     input.Phone,
		Code:      value,
		ExpiresAt: s.now().Add(s.ttl),
	}

	if err := s.codes.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("save verification code: %w", err)
	}

	payload := events.VerificationPayload{
		Phone:     code.Phone,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
	}
	if err := s.publisher.Publish(ctx, events.VerificationRequested, payload); err != nil {
		s.logger.Error("Failed to publish verification event",
			zap.Int64("client_id", input.ClientID),
			zap.Error(err),
		)
	}

	s.logger.Info("Verification code issued",
		zap.Int64("client_id", input.ClientID),
		zap.Time("expires_at", code.ExpiresAt),
	)

	return code, nil
}

// VerifyCode погашает последний действующий код телефона
func (s *VerificationService) VerifyCode(ctx context.Context, phone, value string) error {
	now := s.now()

	code, err := s.codes.GetLatestActive(ctx, phone, now)
	if err != nil {
		return fmt.Errorf("get verification code: %w", err)
	}
	if code == nil || !code.IsUsable(now) {
		return ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(code.Code), []byte(value)) != 1 {
		return ErrInvalidCode
	}

	consumed, err := s.codes.Consume(ctx, code.ID, now)
	if err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	if !consumed {
		// Параллельный запрос успел раньше
		return ErrCodeExpired
	}

	return nil
}

// VerifyClient подтверждает телефон клиента. telegramID, если передан, привязывается к клиенту
func (s *VerificationService) VerifyClient(ctx context.Context, input VerifyCodeInput, telegramID *int64) (*model.Client, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	client, err := s.clientWithPhone(ctx, input.ClientID, input.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.VerifyCode(ctx, input.Phone, input.Code); err != nil {
		s.logger.Info("Verification failed",
			zap.Int64("client_id", client.ID),
			zap.Error(err),
		)
		return nil, err
	}

	now := s.now()
	if err := s.clients.MarkVerified(ctx, client.ID, now, telegramID); err != nil {
		if errors.Is(err, repository.ErrDuplicateClient) {
			return nil, ErrClientExists
		}
		return nil, fmt.Errorf("mark client verified: %w", err)
	}

	client.VerifiedAt = &now
	if telegramID != nil {
		client.TelegramID = telegramID
	}

	s.logger.Info("Client verified",
		zap.Int64("client_id", client.ID),
		zap.Bool("telegram_linked", telegramID != nil),
	)

	return client, nil
}

// LinkTelegram подтверждает телефон и привязывает аккаунт Telegram
func (s *VerificationService) LinkTelegram(ctx context.Context, input VerifyCodeInput, telegramID int64) (*model.Client, error) {
	return s.VerifyClient(ctx, input, &telegramID)
}

// PurgeExpired удаляет истёкшие и использованные коды
func (s *VerificationService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.codes.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge verification codes: %w", err)
	}
	return deleted, nil
}

func (s *VerificationService) clientWithPhone(ctx context.Context, clientID int64, phone string) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	if client.Phone != phone {
		return nil, ErrPhoneMismatch
	}
	return client, nil
}

// generateCode возвращает случайный код из codeDigits цифр
func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
