package handler

import (
	"errors"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	svcfile "github.com/vrushti/clinic_backend/internal/service/file"
)

type FileHandler struct {
	svc svcfile.Service
}

func NewFileHandler(svc svcfile.Service) *FileHandler {
	return &FileHandler{svc: svc}
}

func mapFileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svcfile.ErrPatientNotFound),
		errors.Is(err, svcfile.ErrFileNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, svcfile.ErrFileNameRequired),
		errors.Is(err, svcfile.ErrEmptyFile):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /patients/:id/files
// Multipart upload; the stored record is returned.
func (h *FileHandler) Upload(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	src, err := fh.Open()
	if err != nil {
		return internalError(c)
	}
	defer src.Close()

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}

	record, err := h.svc.Upload(c.Context(), patientID, svcfile.UploadRequest{
		FileName: fh.Filename,
		MimeType: mimeType,
		Content:  src,
		Size:     fh.Size,
	})
	if err != nil {
		return mapFileError(c, err)
	}

	return created(c, record, "file uploaded")
}

// GET /patients/:id/files
func (h *FileHandler) List(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	files, err := h.svc.List(c.Context(), patientID)
	if err != nil {
		return mapFileError(c, err)
	}

	return ok(c, files, "files retrieved")
}

// GET /patients/:id/files/:fileId/download
func (h *FileHandler) Download(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	fileID, valid := parseObjectID(c, "fileId")
	if !valid {
		return badRequest(c, "invalid file id")
	}

	url, err := h.svc.DownloadURL(c.Context(), patientID, fileID)
	if err != nil {
		return mapFileError(c, err)
	}

	return ok(c, fiber.Map{"url": url}, "download link generated")
}

// DELETE /patients/:id/files/:fileId
func (h *FileHandler) Delete(c fiber.Ctx) error {
	patientID, valid := parseObjectID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	fileID, valid := parseObjectID(c, "fileId")
	if !valid {
		return badRequest(c, "invalid file id")
	}

	if err := h.svc.Delete(c.Context(), patientID, fileID); err != nil {
		return mapFileError(c, err)
	}

	return ok(c, nil, "file deleted")
}
