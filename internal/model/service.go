package model

import "time"

// Service - услуга предприятия, длительность определяет сколько слотов займёт запись
type Service struct {
	ID                int64     `json:"id"`
	EnterpriseID      int64     `json:"enterprise_id"`
	Name              string    `json:"name"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	PriceCents        int       `json:"price_cents"` // в центах
	CreatedAt         time.Time `json:"created_at"`
}
