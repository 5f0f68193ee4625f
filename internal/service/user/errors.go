package user

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidPhone       = errors.New("phone number must have at least 10 digits")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrOTPInvalid         = errors.New("OTP is invalid or has expired")
	ErrUserNotFound       = errors.New("user not found")
)
