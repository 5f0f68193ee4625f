package user

import (
	"context"
	"testing"

	"github.com/vrushti/clinic_backend/internal/model"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Staff@Clinic.example", "staff@clinic.example"},
		{"  padded@clinic.example  ", "padded@clinic.example"},
		{"already@lower.example", "already@lower.example"},
	}

	for _, tt := range tests {
		if got := normalizeEmail(tt.in); got != tt.want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"staff@clinic.example",
		"dr.mehta+reception@clinic.co.in",
	}
	invalid := []string{
		"",
		"noat.example",
		"two@@clinic.example",
		"spaces in@clinic.example",
		"nodomain@",
		"nodot@clinic",
	}

	for _, addr := range valid {
		if !validEmail(addr) {
			t.Errorf("validEmail(%q) = false, want true", addr)
		}
	}
	for _, addr := range invalid {
		if validEmail(addr) {
			t.Errorf("validEmail(%q) = true, want false", addr)
		}
	}
}

// Registration validation runs before any store access, so invalid input can
// be exercised without a database.
func TestRegisterValidation(t *testing.T) {
	svc := New(nil, nil, nil, Options{}, nil)

	valid := RegisterRequest{
		Name:     "Dr. Mehta",
		Email:    "mehta@clinic.example",
		Phone:    "9876543210",
		Password: "long-enough-secret",
	}

	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		wantErr error
	}{
		{"missing name", func(r *RegisterRequest) { r.Name = "" }, ErrNameRequired},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"missing phone", func(r *RegisterRequest) { r.Phone = "" }, ErrInvalidPhone},
		{"short phone", func(r *RegisterRequest) { r.Phone = "12345" }, ErrInvalidPhone},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if _, err := svc.Register(context.Background(), req); err != tt.wantErr {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoleFromString(t *testing.T) {
	tests := []struct {
		in   string
		want model.Role
	}{
		{"admin", model.RoleAdmin},
		{"Admin", model.RoleStaff},
		{"staff", model.RoleStaff},
		{"", model.RoleStaff},
		{"superuser", model.RoleStaff},
	}

	for _, tt := range tests {
		if got := model.RoleFromString(tt.in); got != tt.want {
			t.Errorf("RoleFromString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
