package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/service/patient"
)

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrNameRequired),
		errors.Is(err, patient.ErrConsultationDateRequired),
		errors.Is(err, patient.ErrInvalidAge),
		errors.Is(err, patient.ErrInvalidGender),
		errors.Is(err, patient.ErrInvalidPhone):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

type patientBody struct {
	Name             *string    `json:"name"`
	Age              *int       `json:"age"`
	Gender           *string    `json:"gender"`
	Address          *string    `json:"address"`
	PhoneNumber      *string    `json:"phoneNumber"`
	ConsultationDate *time.Time `json:"consultationDate"`
}

// POST /patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	var body patientBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := patient.CreatePatientRequest{ConsultationDate: body.ConsultationDate}
	if body.Name != nil {
		req.Name = *body.Name
	}
	if body.Age != nil {
		req.Age = *body.Age
	}
	if body.Gender != nil {
		req.Gender = *body.Gender
	}
	if body.Address != nil {
		req.Address = *body.Address
	}
	if body.PhoneNumber != nil {
		req.PhoneNumber = *body.PhoneNumber
	}

	p, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapPatientError(c, err)
	}

	return created(c, p, "patient created")
}

// GET /patients?name=
func (h *PatientHandler) List(c fiber.Ctx) error {
	req := patient.ListPatientsRequest{}
	if name := c.Query("name"); name != "" {
		req.Name = &name
	}

	patients, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapPatientError(c, err)
	}

	return ok(c, patients, "patients retrieved")
}

// GET /patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	id, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	p, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapPatientError(c, err)
	}

	return ok(c, p, "patient retrieved")
}

// PUT /patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	id, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body patientBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Update(c.Context(), id, patient.UpdatePatientRequest{
		Name:             body.Name,
		Age:              body.Age,
		Gender:           body.Gender,
		Address:          body.Address,
		PhoneNumber:      body.PhoneNumber,
		ConsultationDate: body.ConsultationDate,
	})
	if err != nil {
		return mapPatientError(c, err)
	}

	return ok(c, p, "patient updated")
}

// DELETE /patients/:id
func (h *PatientHandler) Delete(c fiber.Ctx) error {
	id, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapPatientError(c, err)
	}

	return ok(c, nil, "patient deleted")
}
