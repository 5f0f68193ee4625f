package file

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vrushti/clinic_backend/internal/model"
)

func TestUploadMode(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"application/pdf", "document"},
		{"image/jpeg", "image"},
		{"image/png", "image"},
		{"application/octet-stream", "image"},
		{"", "image"},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := uploadMode(tt.mimeType); got != tt.want {
				t.Errorf("uploadMode(%q) = %q, want %q", tt.mimeType, got, tt.want)
			}
		})
	}
}

func TestStorageKey(t *testing.T) {
	patientID := primitive.NewObjectID()

	key := storageKey(patientID, "blood-report.PDF", "application/pdf")

	wantPrefix := "patients/" + patientID.Hex() + "/document/"
	if !strings.HasPrefix(key, wantPrefix) {
		t.Errorf("storageKey() = %q, want prefix %q", key, wantPrefix)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("storageKey() = %q, want lowercased .pdf suffix", key)
	}

	key2 := storageKey(patientID, "blood-report.PDF", "application/pdf")
	if key == key2 {
		t.Error("storageKey() should be unique per upload")
	}
}

func TestStorageKeyImage(t *testing.T) {
	patientID := primitive.NewObjectID()

	key := storageKey(patientID, "xray.jpeg", "image/jpeg")
	if !strings.Contains(key, "/image/") {
		t.Errorf("storageKey() = %q, want image mode", key)
	}
	if !strings.HasSuffix(key, ".jpeg") {
		t.Errorf("storageKey() = %q, want .jpeg suffix", key)
	}
}

type stubBlobs struct {
	presigned  string
	presignErr error
}

func (s stubBlobs) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	return nil
}
func (s stubBlobs) ObjectURL(key string) string { return "https://cdn.example/" + key }
func (s stubBlobs) PresignDownload(ctx context.Context, key string) (string, error) {
	return s.presigned, s.presignErr
}
func (s stubBlobs) Delete(ctx context.Context, key string) error { return nil }

func TestResolveDownloadURL(t *testing.T) {
	svc := &fileService{blobs: stubBlobs{presigned: "https://cdn.example/signed?sig=abc"}}

	url, err := svc.resolveDownloadURL(context.Background(), model.InvestigationFile{
		StorageKey: "patients/x/image/y.png",
	})
	if err != nil {
		t.Fatalf("resolveDownloadURL() error = %v", err)
	}
	if url != "https://cdn.example/signed?sig=abc" {
		t.Errorf("resolveDownloadURL() = %q, want presigned URL", url)
	}
}

func TestResolveDownloadURLLegacyRecord(t *testing.T) {
	svc := &fileService{blobs: stubBlobs{presignErr: errors.New("should not be called")}}

	url, err := svc.resolveDownloadURL(context.Background(), model.InvestigationFile{
		URL: "https://cdn.example/legacy.png",
	})
	if err != nil {
		t.Fatalf("resolveDownloadURL() error = %v", err)
	}
	if url != "https://cdn.example/legacy.png" {
		t.Errorf("resolveDownloadURL() = %q, want stored URL", url)
	}
}

func TestResolveDownloadURLPresignFailure(t *testing.T) {
	svc := &fileService{blobs: stubBlobs{presignErr: errors.New("endpoint down")}}

	if _, err := svc.resolveDownloadURL(context.Background(), model.InvestigationFile{
		StorageKey: "patients/x/image/y.png",
	}); err == nil {
		t.Error("resolveDownloadURL() should surface presign failure")
	}
}

func TestStorageKeyNoExtension(t *testing.T) {
	patientID := primitive.NewObjectID()

	key := storageKey(patientID, "scan", "image/png")
	parts := strings.Split(key, "/")
	if len(parts) != 4 {
		t.Fatalf("storageKey() = %q, want 4 path segments", key)
	}
	if strings.Contains(parts[3], ".") {
		t.Errorf("storageKey() = %q, extensionless name should produce extensionless key", key)
	}
}
