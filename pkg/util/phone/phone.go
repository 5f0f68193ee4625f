package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/vrushti/clinic_backend/config"
)

var ErrInvalidNumber = errors.New("invalid phone number")

// DefaultRegion is used when a number has no international prefix.
const DefaultRegion = "IN"

// Normalizer validates and canonicalizes phone numbers for storage.
type Normalizer struct {
	region string
}

func New(cfg config.PhoneConfig) *Normalizer {
	region := cfg.DefaultRegion
	if region == "" {
		region = DefaultRegion
	}
	return &Normalizer{region: region}
}

// Normalize parses raw and returns the number in E.164 format.
// Numbers without a country prefix are interpreted in the default region.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidNumber
	}

	num, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return "", ErrInvalidNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Valid reports whether raw parses to a valid number.
func (n *Normalizer) Valid(raw string) bool {
	_, err := n.Normalize(raw)
	return err == nil
}

// CountDigits reports how many decimal digits appear in raw, ignoring
// punctuation and spacing.
func CountDigits(raw string) int {
	digits := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits
}
