package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vrushti/clinic_backend/internal/service/treatment"
)

type TreatmentHandler struct {
	svc treatment.Service
}

func NewTreatmentHandler(svc treatment.Service) *TreatmentHandler {
	return &TreatmentHandler{svc: svc}
}

func mapTreatmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, treatment.ErrPatientNotFound),
		errors.Is(err, treatment.ErrItemNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, treatment.ErrMedicineNameRequired),
		errors.Is(err, treatment.ErrDietTypeRequired),
		errors.Is(err, treatment.ErrEmptyRequest):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

type homoeopathyItemBody struct {
	ItemID              *string `json:"itemId"`
	MedicineName        *string `json:"medicineName"`
	Potency             *string `json:"potency"`
	Repetition          *string `json:"repetition"`
	InstructionMedicine *string `json:"instructionMedicine"`
	InstructionPatient  *string `json:"instructionPatient"`
}

type dietItemBody struct {
	ItemID      *string `json:"itemId"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

type treatmentBody struct {
	Homoeopathy []homoeopathyItemBody `json:"homoeopathy"`
	Diet        []dietItemBody        `json:"diet"`
	Notes       *string               `json:"notes"`
}

func (b homoeopathyItemBody) toInput() (treatment.HomoeopathyItemInput, error) {
	in := treatment.HomoeopathyItemInput{
		MedicineName:        b.MedicineName,
		Potency:             b.Potency,
		Repetition:          b.Repetition,
		InstructionMedicine: b.InstructionMedicine,
		InstructionPatient:  b.InstructionPatient,
	}
	if b.ItemID != nil && *b.ItemID != "" {
		id, err := primitive.ObjectIDFromHex(*b.ItemID)
		if err != nil {
			return in, err
		}
		in.ItemID = &id
	}
	return in, nil
}

func (b dietItemBody) toInput() (treatment.DietItemInput, error) {
	in := treatment.DietItemInput{
		Type:        b.Type,
		Description: b.Description,
	}
	if b.ItemID != nil && *b.ItemID != "" {
		id, err := primitive.ObjectIDFromHex(*b.ItemID)
		if err != nil {
			return in, err
		}
		in.ItemID = &id
	}
	return in, nil
}

func (b treatmentBody) toInputs() ([]treatment.HomoeopathyItemInput, []treatment.DietItemInput, error) {
	homoeo := make([]treatment.HomoeopathyItemInput, 0, len(b.Homoeopathy))
	for _, item := range b.Homoeopathy {
		in, err := item.toInput()
		if err != nil {
			return nil, nil, err
		}
		homoeo = append(homoeo, in)
	}
	diet := make([]treatment.DietItemInput, 0, len(b.Diet))
	for _, item := range b.Diet {
		in, err := item.toInput()
		if err != nil {
			return nil, nil, err
		}
		diet = append(diet, in)
	}
	return homoeo, diet, nil
}

// GET /patients/:id/treatment
func (h *TreatmentHandler) Get(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	t, err := h.svc.Get(c.Context(), patientID)
	if err != nil {
		return mapTreatmentError(c, err)
	}

	return ok(c, t, "treatment retrieved")
}

// POST /patients/:id/treatment
func (h *TreatmentHandler) Add(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body treatmentBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	homoeo, diet, err := body.toInputs()
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	t, err := h.svc.AddItems(c.Context(), patientID, treatment.AddItemsRequest{
		Homoeopathy: homoeo,
		Diet:        diet,
		Notes:       body.Notes,
	})
	if err != nil {
		return mapTreatmentError(c, err)
	}

	return created(c, t, "treatment items added")
}

// PUT /patients/:id/treatment
func (h *TreatmentHandler) Edit(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body treatmentBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	homoeo, diet, err := body.toInputs()
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	t, err := h.svc.Edit(c.Context(), patientID, treatment.EditRequest{
		Homoeopathy: homoeo,
		Diet:        diet,
		Notes:       body.Notes,
	})
	if err != nil {
		return mapTreatmentError(c, err)
	}

	return ok(c, t, "treatment updated")
}

// DELETE /patients/:id/treatment/:itemId
func (h *TreatmentHandler) DeleteItem(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	itemID, valid := parseObjectID(c, "itemId")
	if !valid {
		return badRequest(c, "invalid item id")
	}

	t, err := h.svc.DeleteItem(c.Context(), patientID, itemID)
	if err != nil {
		return mapTreatmentError(c, err)
	}

	return ok(c, t, "treatment item deleted")
}
