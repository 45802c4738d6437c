package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VerificationCodeRepository - персистентное хранилище кодов с истечением срока
type VerificationCodeRepository struct {
	*base.Repository
}

func NewVerificationCodeRepository(pool *pgxpool.Pool) *VerificationCodeRepository {
	return &VerificationCodeRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет новый код
func (r *VerificationCodeRepository) Create(ctx context.Context, code *model.VerificationCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}

	query := `
		INSERT INTO verification_codes (id, phone, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.DB().QueryRow(ctx, query, code.ID, code.Phone, code.Code, code.ExpiresAt).
		Scan(&code.CreatedAt)
	if err != nil {
		return fmt.Errorf("create verification code: %w", err)
	}

	return nil
}

// GetLatestActive получает последний неиспользованный и неистёкший код для телефона
func (r *VerificationCodeRepository) GetLatestActive(ctx context.Context, phone string, now time.Time) (*model.VerificationCode, error) {
	query := `
		SELECT id, phone, code, expires_at, consumed_at, created_at
		FROM verification_codes
		WHERE phone = $1 AND consumed_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var code model.VerificationCode
	err := r.DB().QueryRow(ctx, query, phone, now).Scan(
		&code.ID,
		&code.Phone,
		&code.Code,
		&code.ExpiresAt,
		&code.ConsumedAt,
		&code.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active verification code: %w", err)
	}

	return &code, nil
}

// Consume помечает код использованным. false - код уже использован кем-то другим
func (r *VerificationCodeRepository) Consume(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	query := `
		UPDATE verification_codes
		SET consumed_at = $1
		WHERE id = $2 AND consumed_at IS NULL
	`

	affected, err := r.ExecAffected(ctx, query, now, id)
	if err != nil {
		return false, fmt.Errorf("consume verification code: %w", err)
	}

	return affected == 1, nil
}

// DeleteExpired удаляет истёкшие и использованные коды
func (r *VerificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM verification_codes
		WHERE expires_at <= $1 OR consumed_at IS NOT NULL
	`

	affected, err := r.ExecAffected(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired verification codes: %w", err)
	}

	return affected, nil
}
