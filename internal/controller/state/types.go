package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Пользователь запросил код через /link и должен прислать его сообщением
	StateAwaitingCode UserState = "awaiting_verification_code"
)

// DefaultTTL - сколько живёт незавершённый диалог
const DefaultTTL = 15 * time.Minute

// Dialog хранит данные незавершённого диалога
type Dialog struct {
	State     UserState
	ClientID  int64
	Phone     string
	UpdatedAt time.Time
}
