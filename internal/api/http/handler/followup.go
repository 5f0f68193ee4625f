package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/vrushti/clinic_backend/internal/service/followup"
)

type FollowUpHandler struct {
	svc followup.Service
}

func NewFollowUpHandler(svc followup.Service) *FollowUpHandler {
	return &FollowUpHandler{svc: svc}
}

func mapFollowUpError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, followup.ErrPatientNotFound),
		errors.Is(err, followup.ErrFollowUpNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, followup.ErrDateRequired),
		errors.Is(err, followup.ErrTimeRequired),
		errors.Is(err, followup.ErrInvalidStatus),
		errors.Is(err, followup.ErrStatusNotSettable):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /patients/:id/followups
func (h *FollowUpHandler) Add(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body struct {
		Date    time.Time `json:"date"`
		Time    string    `json:"time"`
		Summary string    `json:"summary"`
		Status  *string   `json:"status"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	f, err := h.svc.Add(c.Context(), patientID, followup.AddFollowUpRequest{
		Date:    body.Date,
		Time:    body.Time,
		Summary: body.Summary,
		Status:  body.Status,
	})
	if err != nil {
		return mapFollowUpError(c, err)
	}

	return created(c, f, "follow-up scheduled")
}

// GET /patients/:id/followups
func (h *FollowUpHandler) ListByPatient(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	followUps, err := h.svc.ListByPatient(c.Context(), patientID)
	if err != nil {
		return mapFollowUpError(c, err)
	}

	return ok(c, followUps, "follow-ups retrieved")
}

// PUT /patients/:id/followups/:followUpId/status
func (h *FollowUpHandler) UpdateStatus(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	followUpID, valid := parseObjectID(c, "followUpId")
	if !valid {
		return badRequest(c, "invalid follow-up id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	f, err := h.svc.UpdateStatus(c.Context(), patientID, followUpID, body.Status)
	if err != nil {
		return mapFollowUpError(c, err)
	}

	return ok(c, f, "follow-up status updated")
}

// DELETE /patients/:id/followups/:followUpId
func (h *FollowUpHandler) Delete(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	followUpID, valid := parseObjectID(c, "followUpId")
	if !valid {
		return badRequest(c, "invalid follow-up id")
	}

	if err := h.svc.Delete(c.Context(), patientID, followUpID); err != nil {
		return mapFollowUpError(c, err)
	}

	return ok(c, nil, "follow-up deleted")
}

// GET /followups?status=&name=&date=
func (h *FollowUpHandler) ListAll(c fiber.Ctx) error {
	req := followup.ListAllRequest{}
	if status := c.Query("status"); status != "" {
		req.Status = &status
	}
	if name := c.Query("name"); name != "" {
		req.Name = &name
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		req.Date = &day
	}

	entries, err := h.svc.ListAll(c.Context(), req)
	if err != nil {
		return mapFollowUpError(c, err)
	}

	return ok(c, entries, "follow-ups retrieved")
}
