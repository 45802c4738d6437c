package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maxBodyBytes - запросы API маленькие, больше не читаем
const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// statusFor сопоставляет доменные ошибки с HTTP статусами
func statusFor(err error) int {
	switch {
	case errors.Is(err, errMalformedBody),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrInvalidWorkingHours),
		errors.Is(err, service.ErrEnterpriseMismatch),
		errors.Is(err, service.ErrPhoneMismatch),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrCodeExpired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEnterpriseNotFound),
		errors.Is(err, service.ErrProfessionalNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrAppointmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrSlotBusy),
		errors.Is(err, service.ErrClientExists),
		errors.Is(err, service.ErrAppointmentNotActive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)

	resp := errorResponse{Message: err.Error()}
	if code == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		resp.Message = "internal server error"
	} else {
		resp.Message = firstLine(err)
		resp.Details = validationDetails(err)
	}

	writeJSON(w, code, resp)
}

// firstLine - errors.Join склеивает сообщения через перевод строки
func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

// validationDetails превращает ошибки валидатора в "поле тег"
func validationDetails(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		detail := strings.ToLower(fe.Field()) + " " + fe.Tag()
		if fe.Param() != "" {
			detail += "=" + fe.Param()
		}
		details = append(details, detail)
	}
	return details
}
