package treatment

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrItemNotFound         = errors.New("treatment item not found")
	ErrMedicineNameRequired = errors.New("medicine name is required")
	ErrDietTypeRequired     = errors.New("diet type is required")
	ErrEmptyRequest         = errors.New("nothing to update")
)
