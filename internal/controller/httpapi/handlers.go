package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/agenda/internal/availability"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	GetAvailableTimes(ctx context.Context, professionalID int64, date string, serviceID *int64) ([]model.SlotCandidate, error)
}

type BookingService interface {
	CreateAppointment(ctx context.Context, input service.CreateAppointmentInput) (*model.Appointment, error)
	RescheduleAppointment(ctx context.Context, id int64, input service.RescheduleAppointmentInput) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	CompleteAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListProfessionalAppointments(ctx context.Context, professionalID int64, date string) ([]*model.Appointment, error)
}

type CatalogService interface {
	CreateEnterprise(ctx context.Context, input service.CreateEnterpriseInput) (*model.Enterprise, error)
	CreateProfessional(ctx context.Context, enterpriseID int64, input service.CreateProfessionalInput) (*model.Professional, error)
	UpdateWorkingHours(ctx context.Context, professionalID int64, input service.WorkingHoursInput) (*model.Professional, error)
	CreateService(ctx context.Context, enterpriseID int64, input service.CreateServiceInput) (*model.Service, error)
	CreateClient(ctx context.Context, enterpriseID int64, input service.CreateClientInput) (*model.Client, error)
}

type VerificationService interface {
	RequestCode(ctx context.Context, input service.RequestCodeInput) (*model.VerificationCode, error)
	VerifyClient(ctx context.Context, input service.VerifyCodeInput, telegramID *int64) (*model.Client, error)
}

// Pinger проверяет доступность базы для /healthz
type Pinger interface {
	Ping(ctx context.Context) error
}

var errInvalidID = errors.New("invalid id in path")

type Handlers struct {
	availability AvailabilityService
	booking      BookingService
	catalog      CatalogService
	verification VerificationService
	db           Pinger
	logger       *zap.Logger
}

func NewHandlers(
	availabilityService AvailabilityService,
	bookingService BookingService,
	catalogService CatalogService,
	verificationService VerificationService,
	db Pinger,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		availability: availabilityService,
		booking:      bookingService,
		catalog:      catalogService,
		verification: verificationService,
		db:           db,
		logger:       logger,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Join(service.ErrInvalidInput, errInvalidID)
	}
	return id, nil
}

// GET /professionals/{id}/available-times?date=YYYY-MM-DD&service_id=N
func (h *Handlers) GetAvailableTimes(w http.ResponseWriter, r *http.Request) {
	professionalID, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var serviceID *int64
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(h.logger, w, r, errors.Join(service.ErrInvalidInput, errors.New("invalid service_id")))
			return
		}
		serviceID = &id
	}

	slots, err := h.availability.GetAvailableTimes(r.Context(), professionalID, r.URL.Query().Get("date"), serviceID)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, slots)
}

// GET /professionals/{id}/appointments?date=YYYY-MM-DD
func (h *Handlers) ListProfessionalAppointments(w http.ResponseWriter, r *http.Request) {
	professionalID, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	appointments, err := h.booking.ListProfessionalAppointments(r.Context(), professionalID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, appointments)
}

// PUT /professionals/{id}/working-hours
func (h *Handlers) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	professionalID, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var input service.WorkingHoursInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	professional, err := h.catalog.UpdateWorkingHours(r.Context(), professionalID, input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, professional)
}

type enterpriseResponse struct {
	*model.Enterprise
	IntervalMinutes int `json:"interval_minutes"`
}

// POST /enterprises
func (h *Handlers) CreateEnterprise(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEnterpriseInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	enterprise, err := h.catalog.CreateEnterprise(r.Context(), input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, enterpriseResponse{
		Enterprise:      enterprise,
		IntervalMinutes: availability.ParseSlotInterval(enterprise.Interval).Minutes(),
	})
}

// POST /enterprises/{id}/professionals
func (h *Handlers) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	enterpriseID, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var input service.CreateProfessionalInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	professional, err := h.catalog.CreateProfessional(r.Context(), enterpriseID, input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, professional)
}

// POST /enterprises/{id}/services
func (h *Handlers) CreateService(w http.ResponseWriter, r *http.Request) {
	enterpriseID, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var input service.CreateServiceInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	svc, err := h.catalog.CreateService(r.Context(), enterpriseID, input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, svc)
}

// POST /enterprises/{id}/clients
func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	enterpriseID, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var input service.CreateClientInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	client, err := h.catalog.CreateClient(r.Context(), enterpriseID, input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

// POST /appointments
func (h *Handlers) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAppointmentInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	appt, err := h.booking.CreateAppointment(r.Context(), input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// PUT /appointments/{id}
func (h *Handlers) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var input service.RescheduleAppointmentInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	appt, err := h.booking.RescheduleAppointment(r.Context(), id, input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// POST /appointments/{id}/cancel
func (h *Handlers) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.booking.CancelAppointment)
}

// POST /appointments/{id}/complete
func (h *Handlers) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.booking.CompleteAppointment)
}

func (h *Handlers) changeStatus(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, id int64) (*model.Appointment, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	appt, err := change(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

type codeRequestedResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

// POST /verification/request. Сам код уходит только через событие
func (h *Handlers) RequestVerificationCode(w http.ResponseWriter, r *http.Request) {
	var input service.RequestCodeInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	code, err := h.verification.RequestCode(r.Context(), input)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, codeRequestedResponse{Phone: code.Phone, ExpiresAt: code.ExpiresAt})
}

// POST /verification/verify
func (h *Handlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var input service.VerifyCodeInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	client, err := h.verification.VerifyClient(r.Context(), input, nil)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
