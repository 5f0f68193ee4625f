package payment

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidAmount   = errors.New("amount must be zero or positive")
	ErrInvalidMethod   = errors.New("payment method must be Cash, UPI, Card or Other")
)
