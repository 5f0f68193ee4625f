package treatment

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vrushti/clinic_backend/internal/model"
	"github.com/vrushti/clinic_backend/internal/store"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type HomoeopathyItemInput struct {
	ItemID              *primitive.ObjectID
	MedicineName        *string
	Potency             *string
	Repetition          *string
	InstructionMedicine *string
	InstructionPatient  *string
}

type DietItemInput struct {
	ItemID      *primitive.ObjectID
	Type        *string
	Description *string
}

type AddItemsRequest struct {
	Homoeopathy []HomoeopathyItemInput
	Diet        []DietItemInput
	Notes       *string
}

type EditRequest struct {
	Homoeopathy []HomoeopathyItemInput
	Diet        []DietItemInput
	Notes       *string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Get(ctx context.Context, patientID primitive.ObjectID) (*model.Treatment, error)
	AddItems(ctx context.Context, patientID primitive.ObjectID, req AddItemsRequest) (*model.Treatment, error)
	// Edit updates or appends a single item per prescription list. Only the
	// first element of each list is considered; an element whose itemId
	// matches an existing entry is merged field by field, anything else is
	// appended as a new item.
	Edit(ctx context.Context, patientID primitive.ObjectID, req EditRequest) (*model.Treatment, error)
	// DeleteItem removes the item with the given id, searching homoeopathy
	// before diet.
	DeleteItem(ctx context.Context, patientID, itemID primitive.ObjectID) (*model.Treatment, error)
}

type treatmentService struct {
	store *store.Store
}

func New(st *store.Store) Service {
	return &treatmentService{store: st}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func (s *treatmentService) Get(ctx context.Context, patientID primitive.ObjectID) (*model.Treatment, error) {
	var doc struct {
		Treatment *model.Treatment `bson:"treatment"`
	}
	opts := options.FindOne().SetProjection(bson.M{"treatment": 1})
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": patientID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return normalizeTreatment(doc.Treatment), nil
}

func (s *treatmentService) AddItems(ctx context.Context, patientID primitive.ObjectID, req AddItemsRequest) (*model.Treatment, error) {
	if len(req.Homoeopathy) == 0 && len(req.Diet) == 0 && req.Notes == nil {
		return nil, ErrEmptyRequest
	}

	homoeo := make([]model.HomoeopathyItem, 0, len(req.Homoeopathy))
	for _, in := range req.Homoeopathy {
		item, err := newHomoeopathyItem(in)
		if err != nil {
			return nil, err
		}
		homoeo = append(homoeo, item)
	}

	diet := make([]model.DietItem, 0, len(req.Diet))
	for _, in := range req.Diet {
		item, err := newDietItem(in)
		if err != nil {
			return nil, err
		}
		diet = append(diet, item)
	}

	if err := s.ensureTreatment(ctx, patientID); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"updatedAt": time.Now().UTC()}}
	push := bson.M{}
	if len(homoeo) > 0 {
		push["treatment.homoeopathy"] = bson.M{"$each": homoeo}
	}
	if len(diet) > 0 {
		push["treatment.diet"] = bson.M{"$each": diet}
	}
	if len(push) > 0 {
		update["$push"] = push
	}
	if req.Notes != nil {
		update["$set"].(bson.M)["treatment.notes"] = *req.Notes
	}

	res, err := s.store.Patients().UpdateOne(ctx, bson.M{"_id": patientID}, update)
	if err != nil {
		return nil, fmt.Errorf("add treatment items: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrPatientNotFound
	}

	return s.Get(ctx, patientID)
}

func (s *treatmentService) Edit(ctx context.Context, patientID primitive.ObjectID, req EditRequest) (*model.Treatment, error) {
	if len(req.Homoeopathy) == 0 && len(req.Diet) == 0 && req.Notes == nil {
		return nil, ErrEmptyRequest
	}

	current, err := s.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTreatment(ctx, patientID); err != nil {
		return nil, err
	}

	// Last write wins on concurrent edits of the same item.
	if len(req.Homoeopathy) > 0 {
		in := req.Homoeopathy[0]
		if in.ItemID != nil && hasHomoeopathyItem(current.Homoeopathy, *in.ItemID) {
			set := homoeopathySetFields(in)
			if len(set) > 0 {
				if err := s.updateWithItemFilter(ctx, patientID, set, *in.ItemID); err != nil {
					return nil, err
				}
			}
		} else {
			item, err := newHomoeopathyItem(in)
			if err != nil {
				return nil, err
			}
			if err := s.pushItem(ctx, patientID, "treatment.homoeopathy", item); err != nil {
				return nil, err
			}
		}
	}

	if len(req.Diet) > 0 {
		in := req.Diet[0]
		if in.ItemID != nil && hasDietItem(current.Diet, *in.ItemID) {
			set := dietSetFields(in)
			if len(set) > 0 {
				if err := s.updateWithItemFilter(ctx, patientID, set, *in.ItemID); err != nil {
					return nil, err
				}
			}
		} else {
			item, err := newDietItem(in)
			if err != nil {
				return nil, err
			}
			if err := s.pushItem(ctx, patientID, "treatment.diet", item); err != nil {
				return nil, err
			}
		}
	}

	if req.Notes != nil {
		_, err := s.store.Patients().UpdateOne(ctx,
			bson.M{"_id": patientID},
			bson.M{"$set": bson.M{"treatment.notes": *req.Notes, "updatedAt": time.Now().UTC()}},
		)
		if err != nil {
			return nil, fmt.Errorf("set treatment notes: %w", err)
		}
	}

	return s.Get(ctx, patientID)
}

func (s *treatmentService) DeleteItem(ctx context.Context, patientID, itemID primitive.ObjectID) (*model.Treatment, error) {
	current, err := s.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var field string
	switch {
	case hasHomoeopathyItem(current.Homoeopathy, itemID):
		field = "treatment.homoeopathy"
	case hasDietItem(current.Diet, itemID):
		field = "treatment.diet"
	default:
		return nil, ErrItemNotFound
	}

	_, err = s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": itemID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("delete treatment item: %w", err)
	}

	return s.Get(ctx, patientID)
}

// ---------------------------------------------------------------------------
// Update plumbing
// ---------------------------------------------------------------------------

// ensureTreatment initializes an empty treatment document on patients that
// never had one, so array pushes have a target.
func (s *treatmentService) ensureTreatment(ctx context.Context, patientID primitive.ObjectID) error {
	_, err := s.store.Patients().UpdateOne(ctx,
		bson.M{
			"_id": patientID,
			"$or": bson.A{
				bson.M{"treatment": bson.M{"$exists": false}},
				bson.M{"treatment": nil},
			},
		},
		bson.M{"$set": bson.M{"treatment": model.Treatment{
			Homoeopathy: []model.HomoeopathyItem{},
			Diet:        []model.DietItem{},
		}}},
	)
	if err != nil {
		return fmt.Errorf("init treatment: %w", err)
	}
	return nil
}

func (s *treatmentService) updateWithItemFilter(ctx context.Context, patientID primitive.ObjectID, set bson.M, itemID primitive.ObjectID) error {
	set["updatedAt"] = time.Now().UTC()
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"it._id": itemID}},
	})
	_, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{"$set": set},
		opts,
	)
	if err != nil {
		return fmt.Errorf("edit treatment item: %w", err)
	}
	return nil
}

func (s *treatmentService) pushItem(ctx context.Context, patientID primitive.ObjectID, field string, item any) error {
	_, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$push": bson.M{field: item},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("append treatment item: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Pure helpers
// ---------------------------------------------------------------------------

func newHomoeopathyItem(in HomoeopathyItemInput) (model.HomoeopathyItem, error) {
	if in.MedicineName == nil || *in.MedicineName == "" {
		return model.HomoeopathyItem{}, ErrMedicineNameRequired
	}
	item := model.HomoeopathyItem{
		ID:           primitive.NewObjectID(),
		MedicineName: *in.MedicineName,
		AddedAt:      time.Now().UTC(),
	}
	if in.Potency != nil {
		item.Potency = *in.Potency
	}
	if in.Repetition != nil {
		item.Repetition = *in.Repetition
	}
	if in.InstructionMedicine != nil {
		item.InstructionMedicine = *in.InstructionMedicine
	}
	if in.InstructionPatient != nil {
		item.InstructionPatient = *in.InstructionPatient
	}
	return item, nil
}

func newDietItem(in DietItemInput) (model.DietItem, error) {
	if in.Type == nil || *in.Type == "" {
		return model.DietItem{}, ErrDietTypeRequired
	}
	item := model.DietItem{
		ID:      primitive.NewObjectID(),
		Type:    *in.Type,
		AddedAt: time.Now().UTC(),
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	return item, nil
}

// homoeopathySetFields builds the positional $set for the fields actually
// supplied. The item id and addedAt are never touched.
func homoeopathySetFields(in HomoeopathyItemInput) bson.M {
	set := bson.M{}
	if in.MedicineName != nil {
		set["treatment.homoeopathy.$[it].medicineName"] = *in.MedicineName
	}
	if in.Potency != nil {
		set["treatment.homoeopathy.$[it].potency"] = *in.Potency
	}
	if in.Repetition != nil {
		set["treatment.homoeopathy.$[it].repetition"] = *in.Repetition
	}
	if in.InstructionMedicine != nil {
		set["treatment.homoeopathy.$[it].instructionMedicine"] = *in.InstructionMedicine
	}
	if in.InstructionPatient != nil {
		set["treatment.homoeopathy.$[it].instructionPatient"] = *in.InstructionPatient
	}
	return set
}

func dietSetFields(in DietItemInput) bson.M {
	set := bson.M{}
	if in.Type != nil {
		set["treatment.diet.$[it].type"] = *in.Type
	}
	if in.Description != nil {
		set["treatment.diet.$[it].description"] = *in.Description
	}
	return set
}

func hasHomoeopathyItem(items []model.HomoeopathyItem, id primitive.ObjectID) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func hasDietItem(items []model.DietItem, id primitive.ObjectID) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func normalizeTreatment(t *model.Treatment) *model.Treatment {
	if t == nil {
		t = &model.Treatment{}
	}
	if t.Homoeopathy == nil {
		t.Homoeopathy = []model.HomoeopathyItem{}
	}
	if t.Diet == nil {
		t.Diet = []model.DietItem{}
	}
	return t
}
