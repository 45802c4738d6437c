package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

// NewRouter собирает chi роутер API
func NewRouter(h *Handlers, cfg RouterConfig, logger *zap.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.RateLimitPerMinute > 0 {
		router.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	}
	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/professionals/{id}", func(r chi.Router) {
			r.Get("/available-times", h.GetAvailableTimes)
			r.Get("/appointments", h.ListProfessionalAppointments)
			r.Put("/working-hours", h.UpdateWorkingHours)
		})

		r.Post("/enterprises", h.CreateEnterprise)
		r.Route("/enterprises/{id}", func(r chi.Router) {
			r.Post("/professionals", h.CreateProfessional)
			r.Post("/services", h.CreateService)
			r.Post("/clients", h.CreateClient)
		})

		r.Post("/appointments", h.CreateAppointment)
		r.Put("/appointments/{id}", h.RescheduleAppointment)
		r.Post("/appointments/{id}/cancel", h.CancelAppointment)
		r.Post("/appointments/{id}/complete", h.CompleteAppointment)

		r.Route("/verification", func(r chi.Router) {
			r.Post("/request", h.RequestVerificationCode)
			r.Post("/verify", h.VerifyCode)
		})
	})

	return router
}
