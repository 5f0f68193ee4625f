package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTreatmentShape(t *testing.T) {
	tr := NewTreatment()
	if tr.Homoeopathy == nil || len(tr.Homoeopathy) != 0 {
		t.Errorf("Homoeopathy = %v, want empty slice", tr.Homoeopathy)
	}
	if tr.Diet == nil || len(tr.Diet) != 0 {
		t.Errorf("Diet = %v, want empty slice", tr.Diet)
	}
	if tr.Notes != "" {
		t.Errorf("Notes = %q, want empty", tr.Notes)
	}
}

func TestEnsureSlicesBackfillsTreatment(t *testing.T) {
	var p Patient
	p.EnsureSlices()

	if p.Treatment == nil {
		t.Fatal("EnsureSlices() left Treatment nil")
	}
	if p.Treatment.Homoeopathy == nil || p.Treatment.Diet == nil {
		t.Errorf("treatment lists not initialized: %+v", p.Treatment)
	}
	if p.InvestigationFiles == nil || p.Payments == nil || p.FollowUps == nil {
		t.Error("EnsureSlices() left a sub-collection nil")
	}
}

func TestEnsureSlicesKeepsExistingTreatment(t *testing.T) {
	p := Patient{Treatment: &Treatment{Notes: "avoid coffee"}}
	p.EnsureSlices()

	if p.Treatment.Notes != "avoid coffee" {
		t.Errorf("Notes = %q, want preserved value", p.Treatment.Notes)
	}
	if p.Treatment.Homoeopathy == nil || p.Treatment.Diet == nil {
		t.Errorf("nested lists not initialized: %+v", p.Treatment)
	}
}

func TestPatientSerializesTreatment(t *testing.T) {
	p := Patient{Treatment: NewTreatment()}
	p.EnsureSlices()

	raw, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"treatment":{"homoeopathy":[],"diet":[]}`) {
		t.Errorf("serialized patient missing initialized treatment: %s", body)
	}
	if strings.Contains(body, `"followUps":null`) {
		t.Errorf("sub-collections should serialize as [], got: %s", body)
	}
}
