package followup

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vrushti/clinic_backend/internal/model"
)

func TestSettableStatus(t *testing.T) {
	tests := []struct {
		status model.FollowUpStatus
		want   bool
	}{
		{model.FollowUpCompleted, true},
		{model.FollowUpPending, true},
		{model.FollowUpUpcoming, false},
		{"", false},
		{"completed", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := settableStatus(tt.status); got != tt.want {
				t.Errorf("settableStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// Add validates before touching the store, so rejected input can be
// exercised without a database.
func TestAddValidation(t *testing.T) {
	svc := New(nil)
	when := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	badStatus := "Done"

	tests := []struct {
		name    string
		req     AddFollowUpRequest
		wantErr error
	}{
		{"missing date", AddFollowUpRequest{Time: "10:30 AM"}, ErrDateRequired},
		{"missing time", AddFollowUpRequest{Date: when}, ErrTimeRequired},
		{"unknown status", AddFollowUpRequest{Date: when, Time: "10:30 AM", Status: &badStatus}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), primitive.NilObjectID, tt.req); err != tt.wantErr {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}

	when := time.Date(2024, 6, 15, 14, 37, 22, 0, loc)
	start, end := dayRange(when)

	wantStart := time.Date(2024, 6, 15, 0, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Errorf("range length = %v, want 24h", got)
	}

	// Midnight itself belongs to the day, the next midnight does not.
	if wantStart.Before(start) || !wantStart.Before(end) {
		t.Error("midnight should be inside the range")
	}
	if end.Before(when) {
		t.Error("the timestamp itself should be inside the range")
	}
}

func TestSchedulePipelineUnfiltered(t *testing.T) {
	pipeline := schedulePipeline(ListAllRequest{})

	// match non-empty, unwind, project, sort
	if len(pipeline) != 4 {
		t.Fatalf("pipeline has %d stages, want 4", len(pipeline))
	}
	if pipeline[1][0].Key != "$unwind" {
		t.Errorf("stage 1 = %s, want $unwind", pipeline[1][0].Key)
	}

	project, ok := pipeline[2][0].Value.(bson.M)
	if !ok || pipeline[2][0].Key != "$project" {
		t.Fatalf("stage 2 = %s, want $project", pipeline[2][0].Key)
	}
	if project["consultationDate"] != "$consultationDate" {
		t.Errorf("projection missing consultationDate: %v", project)
	}

	sort, ok := pipeline[3][0].Value.(bson.D)
	if !ok || pipeline[3][0].Key != "$sort" {
		t.Fatalf("last stage = %s, want $sort", pipeline[3][0].Key)
	}
	if sort[0].Key != "date" || sort[0].Value != 1 {
		t.Errorf("primary sort = %v, want date ascending", sort[0])
	}
	if sort[1].Key != "time" || sort[1].Value != 1 {
		t.Errorf("secondary sort = %v, want time ascending", sort[1])
	}
}

func TestSchedulePipelineFilters(t *testing.T) {
	status := "Pending"
	name := "asha"
	date := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)

	pipeline := schedulePipeline(ListAllRequest{
		Status: &status,
		Name:   &name,
		Date:   &date,
	})

	// match non-empty, name match, unwind, entry match, project, sort
	if len(pipeline) != 6 {
		t.Fatalf("pipeline has %d stages, want 6", len(pipeline))
	}

	nameMatch, ok := pipeline[1][0].Value.(bson.M)
	if !ok || pipeline[1][0].Key != "$match" {
		t.Fatalf("stage 1 should be the name $match")
	}
	if _, ok := nameMatch["name"]; !ok {
		t.Errorf("name filter missing: %v", nameMatch)
	}

	entryMatch, ok := pipeline[3][0].Value.(bson.M)
	if !ok || pipeline[3][0].Key != "$match" {
		t.Fatalf("stage 3 should be the entry $match")
	}
	if entryMatch["followUps.status"] != status {
		t.Errorf("status filter = %v, want %q", entryMatch["followUps.status"], status)
	}

	window, ok := entryMatch["followUps.date"].(bson.M)
	if !ok {
		t.Fatalf("date filter missing: %v", entryMatch)
	}
	start := window["$gte"].(time.Time)
	end := window["$lt"].(time.Time)
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("window start = %v, want local midnight", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("window length = %v, want 24h", end.Sub(start))
	}
}

func TestSchedulePipelineRegexEscapesName(t *testing.T) {
	name := "a.b*c"
	pipeline := schedulePipeline(ListAllRequest{Name: &name})

	nameMatch := pipeline[1][0].Value.(bson.M)
	filter := nameMatch["name"].(bson.M)
	if filter["$regex"] == name {
		t.Error("regex metacharacters in the name filter should be escaped")
	}
}
