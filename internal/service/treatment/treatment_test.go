package treatment

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vrushti/clinic_backend/internal/model"
)

func strptr(s string) *string { return &s }

func TestNewHomoeopathyItem(t *testing.T) {
	in := HomoeopathyItemInput{
		MedicineName: strptr("Arnica"),
		Potency:      strptr("30C"),
		Repetition:   strptr("twice daily"),
	}

	item, err := newHomoeopathyItem(in)
	if err != nil {
		t.Fatalf("newHomoeopathyItem() error = %v", err)
	}
	if item.ID.IsZero() {
		t.Error("new item should get an id")
	}
	if item.AddedAt.IsZero() {
		t.Error("new item should get an addedAt timestamp")
	}
	if item.MedicineName != "Arnica" || item.Potency != "30C" || item.Repetition != "twice daily" {
		t.Errorf("fields not copied: %+v", item)
	}
	if item.InstructionMedicine != "" || item.InstructionPatient != "" {
		t.Errorf("unsupplied fields should stay empty: %+v", item)
	}
}

func TestNewHomoeopathyItemRequiresMedicineName(t *testing.T) {
	if _, err := newHomoeopathyItem(HomoeopathyItemInput{}); err != ErrMedicineNameRequired {
		t.Errorf("error = %v, want ErrMedicineNameRequired", err)
	}
	if _, err := newHomoeopathyItem(HomoeopathyItemInput{MedicineName: strptr("")}); err != ErrMedicineNameRequired {
		t.Errorf("empty name error = %v, want ErrMedicineNameRequired", err)
	}
}

func TestNewDietItem(t *testing.T) {
	item, err := newDietItem(DietItemInput{
		Type:        strptr("avoid"),
		Description: strptr("no cold drinks"),
	})
	if err != nil {
		t.Fatalf("newDietItem() error = %v", err)
	}
	if item.Type != "avoid" || item.Description != "no cold drinks" {
		t.Errorf("fields not copied: %+v", item)
	}

	if _, err := newDietItem(DietItemInput{}); err != ErrDietTypeRequired {
		t.Errorf("missing type error = %v, want ErrDietTypeRequired", err)
	}
}

func TestHomoeopathySetFields(t *testing.T) {
	set := homoeopathySetFields(HomoeopathyItemInput{
		Potency:            strptr("200C"),
		InstructionPatient: strptr("before meals"),
	})

	if len(set) != 2 {
		t.Fatalf("set has %d fields, want 2: %v", len(set), set)
	}
	if set["treatment.homoeopathy.$[it].potency"] != "200C" {
		t.Errorf("potency not set: %v", set)
	}
	if set["treatment.homoeopathy.$[it].instructionPatient"] != "before meals" {
		t.Errorf("instructionPatient not set: %v", set)
	}

	// Id and addedAt must never appear in the positional update.
	for k := range set {
		if k == "treatment.homoeopathy.$[it]._id" || k == "treatment.homoeopathy.$[it].addedAt" {
			t.Errorf("immutable field in set: %s", k)
		}
	}
}

func TestHomoeopathySetFieldsEmptyInput(t *testing.T) {
	if set := homoeopathySetFields(HomoeopathyItemInput{}); len(set) != 0 {
		t.Errorf("empty input should produce no updates, got %v", set)
	}
}

func TestDietSetFields(t *testing.T) {
	set := dietSetFields(DietItemInput{Type: strptr("include")})
	if len(set) != 1 || set["treatment.diet.$[it].type"] != "include" {
		t.Errorf("unexpected set: %v", set)
	}
}

func TestHasItem(t *testing.T) {
	id1 := primitive.NewObjectID()
	id2 := primitive.NewObjectID()
	items := []model.HomoeopathyItem{
		{ID: id1, MedicineName: "Arnica", AddedAt: time.Now()},
	}

	if !hasHomoeopathyItem(items, id1) {
		t.Error("hasHomoeopathyItem() = false for present id")
	}
	if hasHomoeopathyItem(items, id2) {
		t.Error("hasHomoeopathyItem() = true for absent id")
	}
	if hasHomoeopathyItem(nil, id1) {
		t.Error("hasHomoeopathyItem() = true for nil slice")
	}

	diet := []model.DietItem{{ID: id2, Type: "avoid"}}
	if !hasDietItem(diet, id2) {
		t.Error("hasDietItem() = false for present id")
	}
	if hasDietItem(diet, id1) {
		t.Error("hasDietItem() = true for absent id")
	}
}

func TestNormalizeTreatment(t *testing.T) {
	got := normalizeTreatment(nil)
	if got == nil || got.Homoeopathy == nil || got.Diet == nil {
		t.Fatalf("normalizeTreatment(nil) = %+v, want empty slices", got)
	}

	partial := &model.Treatment{Notes: "rest"}
	got = normalizeTreatment(partial)
	if got.Homoeopathy == nil || got.Diet == nil {
		t.Errorf("normalizeTreatment() left nil slices: %+v", got)
	}
	if got.Notes != "rest" {
		t.Errorf("normalizeTreatment() dropped notes")
	}
}
