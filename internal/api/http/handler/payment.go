package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/service/payment"
)

type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func mapPaymentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, payment.ErrPatientNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrInvalidMethod):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /patients/:id/payments
func (h *PaymentHandler) Add(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body struct {
		Amount             float64    `json:"amount"`
		PaymentMethod      string     `json:"paymentMethod"`
		BillGenerationDate *time.Time `json:"billGenerationDate"`
		Notes              string     `json:"notes"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Add(c.Context(), patientID, payment.AddPaymentRequest{
		Amount:             body.Amount,
		PaymentMethod:      body.PaymentMethod,
		BillGenerationDate: body.BillGenerationDate,
		Notes:              body.Notes,
	})
	if err != nil {
		return mapPaymentError(c, err)
	}

	return created(c, p, "payment recorded")
}

// GET /patients/:id/payments
func (h *PaymentHandler) ListByPatient(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	result, err := h.svc.ListByPatient(c.Context(), patientID)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return ok(c, result, "payments retrieved")
}

// DELETE /patients/:id/payments/:paymentId
func (h *PaymentHandler) Delete(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	paymentID, valid := parseObjectID(c, "paymentId")
	if !valid {
		return badRequest(c, "invalid payment id")
	}

	if err := h.svc.Delete(c.Context(), patientID, paymentID); err != nil {
		return mapPaymentError(c, err)
	}

	return ok(c, nil, "payment deleted")
}

// GET /payments
func (h *PaymentHandler) ListAll(c fiber.Ctx) error {
	entries, err := h.svc.ListAll(c.Context())
	if err != nil {
		return mapPaymentError(c, err)
	}

	return ok(c, entries, "payments retrieved")
}
