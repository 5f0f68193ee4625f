package patient

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vrushti/clinic_backend/internal/model"
	"github.com/vrushti/clinic_backend/internal/store"
	"github.com/vrushti/clinic_backend/pkg/util/phone"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreatePatientRequest struct {
	Name             string
	Age              int
	Gender           string
	Address          string
	PhoneNumber      string
	ConsultationDate *time.Time
}

type UpdatePatientRequest struct {
	Name             *string
	Age              *int
	Gender           *string
	Address          *string
	PhoneNumber      *string
	ConsultationDate *time.Time
}

type ListPatientsRequest struct {
	Name *string // case-insensitive substring match
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreatePatientRequest) (*model.Patient, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Patient, error)
	List(ctx context.Context, req ListPatientsRequest) ([]model.Patient, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BlobDeleter removes an uploaded object from blob storage. Deleting a
// patient cleans up their investigation files through it.
type BlobDeleter interface {
	Delete(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	store  *store.Store
	blobs  BlobDeleter
	phones *phone.Normalizer
	log    *slog.Logger
}

func New(st *store.Store, blobs BlobDeleter, phones *phone.Normalizer, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &patientService{store: st, blobs: blobs, phones: phones, log: log}
}

func (s *patientService) Create(ctx context.Context, req CreatePatientRequest) (*model.Patient, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := model.Patient{
		ID:                 primitive.NewObjectID(),
		Name:               req.Name,
		Age:                req.Age,
		Gender:             model.Gender(req.Gender),
		Address:            req.Address,
		PhoneNumber:        s.canonicalPhone(req.PhoneNumber),
		ConsultationDate:   *req.ConsultationDate,
		InvestigationFiles: []model.InvestigationFile{},
		Treatment:          model.NewTreatment(),
		Payments:           []model.Payment{},
		FollowUps:          []model.FollowUp{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := s.store.Patients().InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return &p, nil
}

func (s *patientService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Patient, error) {
	var p model.Patient
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	p.EnsureSlices()
	return &p, nil
}

func (s *patientService) List(ctx context.Context, req ListPatientsRequest) ([]model.Patient, error) {
	filter := bson.M{}
	if req.Name != nil && *req.Name != "" {
		filter["name"] = bson.M{
			"$regex":   regexp.QuoteMeta(*req.Name),
			"$options": "i",
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "consultationDate", Value: -1}})
	cursor, err := s.store.Patients().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer cursor.Close(ctx)

	patients := []model.Patient{}
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	for i := range patients {
		patients[i].EnsureSlices()
	}
	return patients, nil
}

// canonicalPhone rewrites the number in E.164 when it parses as a real
// phone number. Unparseable but digit-sufficient numbers are stored as given.
func (s *patientService) canonicalPhone(raw string) string {
	if s.phones == nil {
		return raw
	}
	if normalized, err := s.phones.Normalize(raw); err == nil {
		return normalized
	}
	return raw
}

func (s *patientService) Update(ctx context.Context, id primitive.ObjectID, req UpdatePatientRequest) (*model.Patient, error) {
	set, err := buildUpdateSet(req)
	if err != nil {
		return nil, err
	}
	if raw, ok := set["phoneNumber"].(string); ok {
		set["phoneNumber"] = s.canonicalPhone(raw)
	}
	set["updatedAt"] = time.Now().UTC()

	var p model.Patient
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.store.Patients().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	p.EnsureSlices()
	return &p, nil
}

// Delete removes the patient record and cleans up their uploaded files from
// blob storage. Blob cleanup is best effort; failures are logged and do not
// block the delete.
func (s *patientService) Delete(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.blobs != nil {
		for _, f := range p.InvestigationFiles {
			if f.StorageKey == "" {
				continue
			}
			if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
				s.log.WarnContext(ctx, "failed to delete investigation file blob",
					"patientId", id.Hex(),
					"storageKey", f.StorageKey,
					"error", err,
				)
			}
		}
	}

	res, err := s.store.Patients().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func validateCreate(req CreatePatientRequest) error {
	if req.Name == "" {
		return ErrNameRequired
	}
	if err := validateAge(req.Age); err != nil {
		return err
	}
	if !model.Gender(req.Gender).Valid() {
		return ErrInvalidGender
	}
	if req.ConsultationDate == nil {
		return ErrConsultationDateRequired
	}
	return validatePhone(req.PhoneNumber)
}

func buildUpdateSet(req UpdatePatientRequest) (bson.M, error) {
	set := bson.M{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		set["name"] = *req.Name
	}
	if req.Age != nil {
		if err := validateAge(*req.Age); err != nil {
			return nil, err
		}
		set["age"] = *req.Age
	}
	if req.Gender != nil {
		if !model.Gender(*req.Gender).Valid() {
			return nil, ErrInvalidGender
		}
		set["gender"] = *req.Gender
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.PhoneNumber != nil {
		if err := validatePhone(*req.PhoneNumber); err != nil {
			return nil, err
		}
		set["phoneNumber"] = *req.PhoneNumber
	}
	if req.ConsultationDate != nil {
		set["consultationDate"] = *req.ConsultationDate
	}
	return set, nil
}

func validateAge(age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	return nil
}

// validatePhone requires at least ten digits; punctuation and spacing are
// ignored so formatted numbers still pass.
func validatePhone(raw string) error {
	digits := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return ErrInvalidPhone
	}
	return nil
}
