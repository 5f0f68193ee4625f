package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
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

type UploadRequest struct {
	FileName string
	MimeType string
	Content  io.Reader
	Size     int64
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Upload(ctx context.Context, patientID primitive.ObjectID, req UploadRequest) (*model.InvestigationFile, error)
	List(ctx context.Context, patientID primitive.ObjectID) ([]model.InvestigationFile, error)
	// DownloadURL returns a short-lived presigned URL for the file's blob.
	DownloadURL(ctx context.Context, patientID, fileID primitive.ObjectID) (string, error)
	// Delete detaches the file record from the patient. The blob delete is
	// best effort; a storage failure leaves an orphaned object but never a
	// dangling record.
	Delete(ctx context.Context, patientID, fileID primitive.ObjectID) error
}

// BlobStorage is the slice of the object store the file service needs.
type BlobStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	ObjectURL(key string) string
	PresignDownload(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type fileService struct {
	store *store.Store
	blobs BlobStorage
	log   *slog.Logger
}

func New(st *store.Store, blobs BlobStorage, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &fileService{store: st, blobs: blobs, log: log}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func (s *fileService) Upload(ctx context.Context, patientID primitive.ObjectID, req UploadRequest) (*model.InvestigationFile, error) {
	if req.FileName == "" {
		return nil, ErrFileNameRequired
	}
	if req.Content == nil {
		return nil, ErrEmptyFile
	}

	key := storageKey(patientID, req.FileName, req.MimeType)

	if err := s.blobs.Upload(ctx, key, req.MimeType, req.Content, req.Size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUpload, err)
	}

	record := model.InvestigationFile{
		ID:         primitive.NewObjectID(),
		FileName:   req.FileName,
		URL:        s.blobs.ObjectURL(key),
		StorageKey: key,
		MimeType:   req.MimeType,
		UploadedAt: time.Now().UTC(),
	}

	res, err := s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$push": bson.M{"investigationFiles": record},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil || res.MatchedCount == 0 {
		// The blob was written before the record; take it back out so a
		// failed attach leaves nothing behind.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.WarnContext(ctx, "failed to clean up orphaned upload",
				"storageKey", key, "error", delErr)
		}
		if err != nil {
			return nil, fmt.Errorf("attach file record: %w", err)
		}
		return nil, ErrPatientNotFound
	}

	return &record, nil
}

func (s *fileService) List(ctx context.Context, patientID primitive.ObjectID) ([]model.InvestigationFile, error) {
	var doc struct {
		InvestigationFiles []model.InvestigationFile `bson:"investigationFiles"`
	}
	opts := options.FindOne().SetProjection(bson.M{"investigationFiles": 1})
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": patientID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("list files: %w", err)
	}
	if doc.InvestigationFiles == nil {
		doc.InvestigationFiles = []model.InvestigationFile{}
	}
	return doc.InvestigationFiles, nil
}

func (s *fileService) DownloadURL(ctx context.Context, patientID, fileID primitive.ObjectID) (string, error) {
	f, err := s.findFile(ctx, patientID, fileID)
	if err != nil {
		return "", err
	}
	return s.resolveDownloadURL(ctx, *f)
}

func (s *fileService) Delete(ctx context.Context, patientID, fileID primitive.ObjectID) error {
	found, err := s.findFile(ctx, patientID, fileID)
	if err != nil {
		return err
	}

	target := *found
	if target.StorageKey != "" {
		if err := s.blobs.Delete(ctx, target.StorageKey); err != nil {
			s.log.WarnContext(ctx, "failed to delete file blob",
				"patientId", patientID.Hex(),
				"storageKey", target.StorageKey,
				"error", err,
			)
		}
	}

	_, err = s.store.Patients().UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$pull": bson.M{"investigationFiles": bson.M{"_id": fileID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("detach file record: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// findFile fetches the one matching file record via an elemMatch projection.
func (s *fileService) findFile(ctx context.Context, patientID, fileID primitive.ObjectID) (*model.InvestigationFile, error) {
	var doc struct {
		InvestigationFiles []model.InvestigationFile `bson:"investigationFiles"`
	}
	opts := options.FindOne().SetProjection(bson.M{
		"investigationFiles": bson.M{"$elemMatch": bson.M{"_id": fileID}},
	})
	err := s.store.Patients().FindOne(ctx, bson.M{"_id": patientID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	if len(doc.InvestigationFiles) == 0 {
		return nil, ErrFileNotFound
	}
	return &doc.InvestigationFiles[0], nil
}

// resolveDownloadURL presigns the blob when a storage key is on record.
// Legacy records without one fall back to their stored public URL.
func (s *fileService) resolveDownloadURL(ctx context.Context, f model.InvestigationFile) (string, error) {
	if f.StorageKey == "" {
		return f.URL, nil
	}
	url, err := s.blobs.PresignDownload(ctx, f.StorageKey)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}

// ---------------------------------------------------------------------------
// Key layout
// ---------------------------------------------------------------------------

// uploadMode buckets files by how the clinic views them. PDFs are scanned
// reports, everything else is treated as an image.
func uploadMode(mimeType string) string {
	if mimeType == "application/pdf" {
		return "document"
	}
	return "image"
}

// storageKey builds the object key for an upload. The uuid keeps repeated
// uploads of the same file name from colliding.
func storageKey(patientID primitive.ObjectID, fileName, mimeType string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("patients/%s/%s/%s%s", patientID.Hex(), uploadMode(mimeType), uuid.NewString(), ext)
}
