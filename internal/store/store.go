package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PatientsCollection = "patients"
	UsersCollection    = "users"
)

// Store wraps the application database and hands out collection handles.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Patients() *mongo.Collection {
	return s.db.Collection(PatientsCollection)
}

func (s *Store) Users() *mongo.Collection {
	return s.db.Collection(UsersCollection)
}

// EnsureIndexes creates the indexes the services rely on. Safe to call on
// every startup; Mongo treats existing identical indexes as a no-op.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("UniqueEmail"),
	})
	if err != nil {
		return fmt.Errorf("create users indexes: %w", err)
	}

	_, err = s.Patients().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("PatientName"),
		},
		{
			Keys:    bson.D{{Key: "consultationDate", Value: -1}},
			Options: options.Index().SetName("ConsultationDateDesc"),
		},
		{
			Keys:    bson.D{{Key: "followUps.date", Value: 1}},
			Options: options.Index().SetName("FollowUpDate"),
		},
	})
	if err != nil {
		return fmt.Errorf("create patients indexes: %w", err)
	}

	return nil
}
