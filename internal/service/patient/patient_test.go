package patient

import (
	"testing"
	"time"
)

func TestValidateCreate(t *testing.T) {
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	valid := CreatePatientRequest{
		Name:             "Asha Patel",
		Age:              34,
		Gender:           "Female",
		PhoneNumber:      "9876543210",
		ConsultationDate: &when,
	}

	tests := []struct {
		name    string
		mutate  func(r *CreatePatientRequest)
		wantErr error
	}{
		{"valid", func(r *CreatePatientRequest) {}, nil},
		{"missing name", func(r *CreatePatientRequest) { r.Name = "" }, ErrNameRequired},
		{"negative age", func(r *CreatePatientRequest) { r.Age = -1 }, ErrInvalidAge},
		{"old age allowed", func(r *CreatePatientRequest) { r.Age = 200 }, nil},
		{"zero age allowed", func(r *CreatePatientRequest) { r.Age = 0 }, nil},
		{"bad gender", func(r *CreatePatientRequest) { r.Gender = "female" }, ErrInvalidGender},
		{"other gender", func(r *CreatePatientRequest) { r.Gender = "Other" }, nil},
		{"missing consultation date", func(r *CreatePatientRequest) { r.ConsultationDate = nil }, ErrConsultationDateRequired},
		{"short phone", func(r *CreatePatientRequest) { r.PhoneNumber = "12345" }, ErrInvalidPhone},
		{"formatted phone", func(r *CreatePatientRequest) { r.PhoneNumber = "+91 98765-43210" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := validateCreate(req); err != tt.wantErr {
				t.Errorf("validateCreate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildUpdateSet(t *testing.T) {
	name := "Ravi Shah"
	age := 40
	gender := "Male"
	phone := "9876543210"
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	set, err := buildUpdateSet(UpdatePatientRequest{
		Name:             &name,
		Age:              &age,
		Gender:           &gender,
		PhoneNumber:      &phone,
		ConsultationDate: &when,
	})
	if err != nil {
		t.Fatalf("buildUpdateSet() error = %v", err)
	}

	want := map[string]any{
		"name":             name,
		"age":              age,
		"gender":           gender,
		"phoneNumber":      phone,
		"consultationDate": when,
	}
	if len(set) != len(want) {
		t.Errorf("buildUpdateSet() produced %d fields, want %d", len(set), len(want))
	}
	for k, v := range want {
		if set[k] != v {
			t.Errorf("buildUpdateSet()[%q] = %v, want %v", k, set[k], v)
		}
	}
}

func TestBuildUpdateSetOmitsUnset(t *testing.T) {
	addr := "12 MG Road"
	set, err := buildUpdateSet(UpdatePatientRequest{Address: &addr})
	if err != nil {
		t.Fatalf("buildUpdateSet() error = %v", err)
	}
	if len(set) != 1 {
		t.Errorf("buildUpdateSet() produced %d fields, want 1", len(set))
	}
	if set["address"] != addr {
		t.Errorf("buildUpdateSet()[address] = %v, want %q", set["address"], addr)
	}
}

func TestBuildUpdateSetRejectsInvalid(t *testing.T) {
	empty := ""
	if _, err := buildUpdateSet(UpdatePatientRequest{Name: &empty}); err != ErrNameRequired {
		t.Errorf("empty name error = %v, want ErrNameRequired", err)
	}

	badAge := -3
	if _, err := buildUpdateSet(UpdatePatientRequest{Age: &badAge}); err != ErrInvalidAge {
		t.Errorf("negative age error = %v, want ErrInvalidAge", err)
	}

	badGender := "unknown"
	if _, err := buildUpdateSet(UpdatePatientRequest{Gender: &badGender}); err != ErrInvalidGender {
		t.Errorf("bad gender error = %v, want ErrInvalidGender", err)
	}

	badPhone := "123"
	if _, err := buildUpdateSet(UpdatePatientRequest{PhoneNumber: &badPhone}); err != ErrInvalidPhone {
		t.Errorf("short phone error = %v, want ErrInvalidPhone", err)
	}
}

func TestValidatePhoneCountsDigitsOnly(t *testing.T) {
	if err := validatePhone("(098) 765-43210"); err != nil {
		t.Errorf("formatted number with 11 digits should pass, got %v", err)
	}
	if err := validatePhone("abcdefghijk"); err != ErrInvalidPhone {
		t.Errorf("letters should fail, got %v", err)
	}
}
