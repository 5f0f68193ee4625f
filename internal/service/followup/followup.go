package followup

import (
	"context"
	"fmt"
	"regexp"
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

type AddFollowUpRequest struct {
	Date    time.Time
	Time    string
	Summary string
	Status  *string
}

// ListAllRequest filters the clinic-wide schedule view. Date selects a
// single calendar day in the server's local time zone.
type ListAllRequest struct {
	Status *string
	Name   *string
	Date   *time.Time
}

// ScheduleEntry is one follow-up joined with its patient.
type ScheduleEntry struct {
	PatientID        primitive.ObjectID   `bson:"patientId" json:"patientId"`
	PatientName      string               `bson:"patientName" json:"patientName"`
	ConsultationDate time.Time            `bson:"consultationDate" json:"consultationDate"`
	FollowUpID       primitive.ObjectID   `bson:"followUpId" json:"followUpId"`
	Date             time.Time            `bson:"date" json:"date"`
	Time             string               `bson:"time,omitempty" json:"time,omitempty"`
	Summary          string               `bson:"summary,omitempty" json:"summary,omitempty"`
	Status           model.FollowUpStatus `bson:"status" json:"status"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Add(ctx context.Context, patientID primitive.ObjectID, req AddFollowUpRequest) (*model.FollowUp, error)
	// UpdateStatus marks a follow-up Completed or Pending.
	UpdateStatus(ctx context.Context, patientID, followUpID primitive.ObjectID, status string) (*model.FollowUp, error)
	// Delete removes a follow-up. Deleting an id that is already gone
	// succeeds; only a missing patient is an error.
	Delete(ctx context.Context, patientID, followUpID primitive.ObjectID) error
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]model.FollowUp, error)
	// ListAll returns follow-ups across all patients, soonest first.
	ListAll(ctx context.Context, req ListAllRequest) ([]ScheduleEntry, error)
}

type followUpService struct {
	store *store.Store
}

func New(st *store.Store) Service {
	return &followUpService{store: st}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func (s *followUpService) Add(ctx context.Context, patientID primitive.ObjectID, req AddFollowUpRequest) (*model.FollowUp, error) {
	if req.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if req.Time == "" {
		return nil, ErrTimeRequired
	}

	status := model.FollowUpUpcoming
	if req.Status != nil {
		status = model.FollowUpStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	f := model.FollowUp{
		ID:        primitive.NewObjectID(),
		Date:      req.Date,
		Time:      req.Time,
		Summary:   req.Summary,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$push": bson.M{"followUps": f},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("add follow-up: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrPatientNotFound
	}
	return &f, nil
}

func (s *followUpService) UpdateStatus(ctx context.Context, patientID, followUpID primitive.ObjectID, status string) (*model.FollowUp, error) {
	next := model.FollowUpStatus(status)
	if !settableStatus(next) {
		return nil, ErrStatusNotSettable
	}

	res, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID, "followUps._id": followUpID},
		bson.M{"$set": bson.M{
			"followUps.$.status": next,
			"updatedAt":          time.Now().UTC(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update follow-up status: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing patient from a missing follow-up.
		if exists, err := s.patientExists(ctx, patientID); err != nil {
			return nil, err
		} else if !exists {
			return nil, ErrPatientNotFound
		}
		return nil, ErrFollowUpNotFound
	}

	return s.getFollowUp(ctx, patientID, followUpID)
}

func (s *followUpService) Delete(ctx context.Context, patientID, followUpID primitive.ObjectID) error {
	res, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$pull": bson.M{"followUps": bson.M{"_id": followUpID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("delete follow-up: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPatientNotFound
	}
	// Already-gone follow-ups delete cleanly.
	return nil
}

func (s *followUpService) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]model.FollowUp, error) {
	var doc struct {
		FollowUps []model.FollowUp `bson:"followUps"`
	}
	opts := options.FindOne().SetProjection(bson.M{"followUps": 1})
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": patientID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("list follow-ups: %w", err)
	}
	if doc.FollowUps == nil {
		doc.FollowUps = []model.FollowUp{}
	}
	return doc.FollowUps, nil
}

func (s *followUpService) ListAll(ctx context.Context, req ListAllRequest) ([]ScheduleEntry, error) {
	if req.Status != nil && !model.FollowUpStatus(*req.Status).Valid() {
		return nil, ErrInvalidStatus
	}

	cursor, err := s.store.Patients().Aggregate(ctx, schedulePipeline(req))
	if err != nil {
		return nil, fmt.Errorf("list all follow-ups: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []ScheduleEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode follow-ups: %w", err)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *followUpService) patientExists(ctx context.Context, patientID primitive.ObjectID) (bool, error) {
	count, err := s.store.Patients().CountDocuments(ctx, bson.M{"_id": patientID})
	if err != nil {
		return false, fmt.Errorf("check patient: %w", err)
	}
	return count > 0, nil
}

func (s *followUpService) getFollowUp(ctx context.Context, patientID, followUpID primitive.ObjectID) (*model.FollowUp, error) {
	var doc struct {
		FollowUps []model.FollowUp `bson:"followUps"`
	}
	opts := options.FindOne().SetProjection(bson.M{
		"followUps": bson.M{"$elemMatch": bson.M{"_id": followUpID}},
	})
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": patientID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get follow-up: %w", err)
	}
	if len(doc.FollowUps) == 0 {
		return nil, ErrFollowUpNotFound
	}
	return &doc.FollowUps[0], nil
}

// settableStatus limits the transition endpoint to terminal states.
func settableStatus(s model.FollowUpStatus) bool {
	return s == model.FollowUpCompleted || s == model.FollowUpPending
}

// dayRange returns the half-open interval covering the calendar day of t in
// t's own location.
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// schedulePipeline flattens embedded follow-ups into one row per follow-up,
// filtered and sorted for the schedule view.
func schedulePipeline(req ListAllRequest) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"followUps.0": bson.M{"$exists": true}}}},
	}

	if req.Name != nil && *req.Name != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"name": bson.M{"$regex": regexp.QuoteMeta(*req.Name), "$options": "i"},
		}}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: "$followUps"}})

	entryMatch := bson.M{}
	if req.Status != nil && *req.Status != "" {
		entryMatch["followUps.status"] = *req.Status
	}
	if req.Date != nil {
		start, end := dayRange(*req.Date)
		entryMatch["followUps.date"] = bson.M{"$gte": start, "$lt": end}
	}
	if len(entryMatch) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: entryMatch}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$project", Value: bson.M{
			"_id":              0,
			"patientId":        "$_id",
			"patientName":      "$name",
			"consultationDate": "$consultationDate",
			"followUpId":       "$followUps._id",
			"date":             "$followUps.date",
			"time":             "$followUps.time",
			"summary":          "$followUps.summary",
			"status":           "$followUps.status",
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		}}},
	)

	return pipeline
}
