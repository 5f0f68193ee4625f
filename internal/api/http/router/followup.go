package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/api/http/handler"
)

func (r *Router) registerFollowUpRoutes(api fiber.Router, h *handler.FollowUpHandler) {
	// Clinic-wide schedule across all patients.
	api.Get("/followups", h.ListAll)
}
