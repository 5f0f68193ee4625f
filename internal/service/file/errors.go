package file

import "errors"

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileNameRequired = errors.New("file name is required")
	ErrEmptyFile        = errors.New("file is empty")
	ErrStorageUpload    = errors.New("failed to store file")
)
