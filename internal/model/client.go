package model

import "time"

type Client struct {
	ID           int64      `json:"id"`
	EnterpriseID int64      `json:"enterprise_id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	TelegramID   *int64     `json:"telegram_id"` // nil - не привязан к боту
	VerifiedAt   *time.Time `json:"verified_at"` // nil - телефон не подтверждён
	CreatedAt    time.Time  `json:"created_at"`
}

// IsVerified проверяет подтверждён ли телефон клиента
func (c *Client) IsVerified() bool {
	return c.VerifiedAt != nil
}
