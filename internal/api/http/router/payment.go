package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/api/http/handler"
)

func (r *Router) registerPaymentRoutes(api fiber.Router, h *handler.PaymentHandler) {
	// Clinic-wide ledger across all patients.
	api.Get("/payments", h.ListAll)
}
