package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode - одноразовый код подтверждения телефона клиента
type VerificationCode struct {
	ID         uuid.UUID  `json:"id"`
	Phone      string     `json:"phone"`
	Code       string     `json:"code"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"` // nil - ещё не использован
	CreatedAt  time.Time  `json:"created_at"`
}

// IsUsable проверяет что код не истёк и не использован
func (v *VerificationCode) IsUsable(now time.Time) bool {
	if v.ConsumedAt != nil {
		return false
	}
	return now.Before(v.ExpiresAt)
}
