package followup

import "errors"

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrFollowUpNotFound = errors.New("follow-up not found")
	ErrDateRequired     = errors.New("follow-up date is required")
	ErrTimeRequired     = errors.New("follow-up time is required")
	ErrInvalidStatus    = errors.New("invalid follow-up status")
	// ErrStatusNotSettable guards the status transition endpoint; a
	// follow-up can be marked Completed or Pending but never moved back
	// to Upcoming.
	ErrStatusNotSettable = errors.New("status can only be set to Completed or Pending")
)
