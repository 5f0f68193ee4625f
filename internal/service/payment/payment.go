package payment

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

type AddPaymentRequest struct {
	Amount             float64
	PaymentMethod      string
	BillGenerationDate *time.Time
	Notes              string
}

// PatientPayments is one patient's payment history with enough context to
// render a statement.
type PatientPayments struct {
	PatientID   primitive.ObjectID `json:"patientId"`
	PatientName string             `json:"patientName"`
	Payments    []model.Payment    `json:"payments"`
}

// LedgerEntry is a single payment joined with its patient, used by the
// clinic-wide ledger view.
type LedgerEntry struct {
	PatientID          primitive.ObjectID  `bson:"patientId" json:"patientId"`
	PatientName        string              `bson:"patientName" json:"patientName"`
	PaymentID          primitive.ObjectID  `bson:"paymentId" json:"paymentId"`
	Amount             float64             `bson:"amount" json:"amount"`
	PaymentMethod      model.PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	BillGenerationDate time.Time           `bson:"billGenerationDate" json:"billGenerationDate"`
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Add(ctx context.Context, patientID primitive.ObjectID, req AddPaymentRequest) (*model.Payment, error)
	// Delete removes a payment entry. Deleting an id that is already gone
	// succeeds; only a missing patient is an error.
	Delete(ctx context.Context, patientID, paymentID primitive.ObjectID) error
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) (*PatientPayments, error)
	// ListAll returns every payment across all patients, newest bill first.
	ListAll(ctx context.Context) ([]LedgerEntry, error)
}

type paymentService struct {
	store *store.Store
}

func New(st *store.Store) Service {
	return &paymentService{store: st}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func (s *paymentService) Add(ctx context.Context, patientID primitive.ObjectID, req AddPaymentRequest) (*model.Payment, error) {
	if err := validateAdd(req); err != nil {
		return nil, err
	}

	billDate := time.Now().UTC()
	if req.BillGenerationDate != nil {
		billDate = *req.BillGenerationDate
	}

	p := model.Payment{
		ID:                 primitive.NewObjectID(),
		Amount:             req.Amount,
		PaymentMethod:      model.PaymentMethod(req.PaymentMethod),
		BillGenerationDate: billDate,
		Notes:              req.Notes,
	}

	res, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$push": bson.M{"payments": p},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("add payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (s *paymentService) Delete(ctx context.Context, patientID, paymentID primitive.ObjectID) error {
	res, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$pull": bson.M{"payments": bson.M{"_id": paymentID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPatientNotFound
	}
	// ModifiedCount of zero means the payment was already gone, which is
	// still a successful delete.
	return nil
}

func (s *paymentService) ListByPatient(ctx context.Context, patientID primitive.ObjectID) (*PatientPayments, error) {
	var doc struct {
		Name     string          `bson:"name"`
		Payments []model.Payment `bson:"payments"`
	}
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "payments": 1})
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": patientID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if doc.Payments == nil {
		doc.Payments = []model.Payment{}
	}
	return &PatientPayments{
		PatientID:   patientID,
		PatientName: doc.Name,
		Payments:    doc.Payments,
	}, nil
}

func (s *paymentService) ListAll(ctx context.Context) ([]LedgerEntry, error) {
	cursor, err := s.store.Patients().Aggregate(ctx, ledgerPipeline())
	if err != nil {
		return nil, fmt.Errorf("list all payments: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []LedgerEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validateAdd(req AddPaymentRequest) error {
	if req.Amount < 0 {
		return ErrInvalidAmount
	}
	if !model.PaymentMethod(req.PaymentMethod).Valid() {
		return ErrInvalidMethod
	}
	return nil
}

// ledgerPipeline flattens embedded payments into one row per payment,
// newest bill first.
func ledgerPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payments.0": bson.M{"$exists": true}}}},
		{{Key: "$unwind", Value: "$payments"}},
		{{Key: "$project", Value: bson.M{
			"_id":                0,
			"patientId":          "$_id",
			"patientName":        "$name",
			"paymentId":          "$payments._id",
			"amount":             "$payments.amount",
			"paymentMethod":      "$payments.paymentMethod",
			"billGenerationDate": "$payments.billGenerationDate",
			"notes":              "$payments.notes",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "billGenerationDate", Value: -1}}}},
	}
}
