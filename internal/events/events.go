package events

import (
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
)

const (
	ExchangeName = "agenda.events"

	AppointmentCreated     = "appointment.created"
	AppointmentRescheduled = "appointment.rescheduled"
	AppointmentCanceled    = "appointment.canceled"
	VerificationRequested  = "verification.requested"
)

// Envelope - общая обёртка всех событий
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type AppointmentPayload struct {
	AppointmentID  int64                   `json:"appointment_id"`
	EnterpriseID   int64                   `json:"enterprise_id"`
	ProfessionalID int64                   `json:"professional_id"`
	ClientID       int64                   `json:"client_id"`
	ServiceID      int64                   `json:"service_id"`
	Date           string                  `json:"date"`
	Time           string                  `json:"time"`
	Status         model.AppointmentStatus `json:"status"`
}

func NewAppointmentPayload(a *model.Appointment) AppointmentPayload {
	return AppointmentPayload{
		AppointmentID:  a.ID,
		EnterpriseID:   a.EnterpriseID,
		ProfessionalID: a.ProfessionalID,
		ClientID:       a.ClientID,
		ServiceID:      a.ServiceID,
		Date:           a.Date,
		Time:           a.Time,
		Status:         a.Status,
	}
}

// VerificationPayload уходит внешнему отправителю сообщений
type VerificationPayload struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
