package patient

import "errors"

var (
	ErrPatientNotFound          = errors.New("patient not found")
	ErrNameRequired             = errors.New("patient name is required")
	ErrConsultationDateRequired = errors.New("consultation date is required")
	ErrInvalidAge               = errors.New("age must not be negative")
	ErrInvalidGender            = errors.New("gender must be Male, Female or Other")
	ErrInvalidPhone             = errors.New("invalid phone number")
	ErrInvalidID                = errors.New("invalid patient id")
)
