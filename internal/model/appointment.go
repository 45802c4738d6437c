package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled" // Создана
	AppointmentStatusConfirmed AppointmentStatus = "confirmed" // Подтверждена
	AppointmentStatusCompleted AppointmentStatus = "completed" // Завершена
	AppointmentStatusCanceled  AppointmentStatus = "canceled"  // Отменена
)

type Appointment struct {
	ID             int64             `json:"id"`
	EnterpriseID   int64             `json:"enterprise_id"`
	ProfessionalID int64             `json:"professional_id"`
	ClientID       int64             `json:"client_id"`
	ServiceID      int64             `json:"service_id"`
	Date           string            `json:"date"`       // YYYY-MM-DD в локальном календаре специалиста
	Time           string            `json:"time"`       // HH:MM:SS
	StartTime      *string           `json:"start_time"` // явное начало окна, если задано
	EndTime        *string           `json:"end_time"`   // явный конец окна, если задан
	Status         AppointmentStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Длительность услуги (не колонка appointments, подтягивается JOIN-ом)
	ServiceDurationInMinutes int `json:"service_duration_in_minutes"`
}

// IsCanceled проверяет отменена ли запись
func (a *Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceled
}

// IsActive проверяет что запись ещё можно перенести или отменить
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}
