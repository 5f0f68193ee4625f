package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/api/http/handler"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	ph *handler.PatientHandler,
	th *handler.TreatmentHandler,
	fh *handler.FileHandler,
	payh *handler.PaymentHandler,
	fuh *handler.FollowUpHandler,
) {
	patients := api.Group("/patients")

	// Patient CRUD
	patients.Get("/", ph.List)
	patients.Post("/", ph.Create)

	p := patients.Group("/:id")
	p.Get("/", ph.Get)
	p.Put("/", ph.Update)
	p.Delete("/", ph.Delete)

	// Treatment
	p.Get("/treatment", th.Get)
	p.Post("/treatment", th.Add)
	p.Put("/treatment", th.Edit)
	p.Delete("/treatment/:itemId", th.DeleteItem)

	// Investigation files
	p.Get("/files", fh.List)
	p.Post("/files", fh.Upload)
	p.Get("/files/:fileId/download", fh.Download)
	p.Delete("/files/:fileId", fh.Delete)

	// Payments
	p.Get("/payments", payh.ListByPatient)
	p.Post("/payments", payh.Add)
	p.Delete("/payments/:paymentId", payh.Delete)

	// Follow-ups
	p.Get("/followups", fuh.ListByPatient)
	p.Post("/followups", fuh.Add)
	p.Put("/followups/:followUpId/status", fuh.UpdateStatus)
	p.Delete("/followups/:followUpId", fuh.Delete)
}
