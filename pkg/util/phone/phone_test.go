package phone

import (
	"testing"

	"github.com/vrushti/clinic_backend/config"
)

func TestNormalize(t *testing.T) {
	n := New(config.PhoneConfig{DefaultRegion: "IN"})

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"national format", "9876543210", "+919876543210", false},
		{"already E.164", "+919876543210", "+919876543210", false},
		{"with spaces", " 98765 43210 ", "+919876543210", false},
		{"foreign number with prefix", "+14155552671", "+14155552671", false},
		{"too short", "12345", "", true},
		{"letters", "not-a-number", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	n := New(config.PhoneConfig{})

	if !n.Valid("+919876543210") {
		t.Error("Valid() = false for valid number")
	}
	if n.Valid("123") {
		t.Error("Valid() = true for invalid number")
	}
}
