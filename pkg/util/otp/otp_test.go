package otp

import (
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr error
	}{
		{"minimum length", 4, nil},
		{"default length", 6, nil},
		{"maximum length", 10, nil},
		{"too short", 3, ErrInvalidLength},
		{"too long", 11, ErrInvalidLength},
		{"zero", 0, ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Generate(tt.length)
			if err != tt.wantErr {
				t.Fatalf("Generate(%d) error = %v, wantErr %v", tt.length, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(code) != tt.length {
				t.Errorf("Generate(%d) length = %d", tt.length, len(code))
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					t.Errorf("Generate(%d) produced non-digit %q in %q", tt.length, r, code)
				}
			}
		})
	}
}

func TestGenerateDefault(t *testing.T) {
	code, err := GenerateDefault()
	if err != nil {
		t.Fatalf("GenerateDefault() error = %v", err)
	}
	if len(code) != DefaultLength {
		t.Errorf("GenerateDefault() length = %d, want %d", len(code), DefaultLength)
	}
}

func TestHashAndVerify(t *testing.T) {
	code := "482913"
	hash := Hash(code)

	if len(hash) != 64 {
		t.Errorf("Hash() length = %d, want 64 hex chars", len(hash))
	}

	if err := Verify(hash, code); err != nil {
		t.Errorf("Verify() correct code error = %v", err)
	}
	if err := Verify(hash, "000000"); err != ErrMismatch {
		t.Errorf("Verify() wrong code error = %v, want ErrMismatch", err)
	}
}

func TestHashNormalizesWhitespace(t *testing.T) {
	hash := Hash("123456")
	if err := Verify(hash, "  123456  "); err != nil {
		t.Errorf("Verify() should trim whitespace, got %v", err)
	}
	if Hash("123456") != Hash(" 123456 ") {
		t.Error("Hash() should normalize surrounding whitespace")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}

	bad := Config{DefaultLength: 12, MinLength: 4, MaxLength: 10}
	if err := bad.Validate(); err != ErrInvalidLength {
		t.Errorf("Validate() error = %v, want ErrInvalidLength", err)
	}
}
