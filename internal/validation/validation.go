// Package validation holds the field validators run before shipment and
// inventory mutations are submitted to the backend. All validators are pure,
// stateless and safe to run in any combination.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterCustomValidations()
}

// Indian vehicle registration: state code, RTO code, series, number
var truckNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}$`)

var nonDigitPattern = regexp.MustCompile(`[^0-9]`)

// ValidateStruct validates a struct using validation tags
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	return nil
}

// NormalizeTruckNumber strips spaces and uppercases a truck registration number
func NormalizeTruckNumber(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
}

// ValidateTruckNumber checks an Indian truck registration number, e.g. MH12AB1234
func ValidateTruckNumber(raw string) error {
	normalized := NormalizeTruckNumber(raw)
	if normalized == "" {
		return fmt.Errorf("truck number is required")
	}
	if !truckNumberPattern.MatchString(normalized) {
		return fmt.Errorf("invalid truck number format (expected e.g. MH12AB1234)")
	}
	return nil
}

// NormalizePhone strips every non-digit character from a phone number
func NormalizePhone(raw string) string {
	return nonDigitPattern.ReplaceAllString(raw, "")
}

// ValidatePhone checks a 10-digit Indian mobile number starting with 6-9
func ValidatePhone(raw string) error {
	digits := NormalizePhone(raw)
	if digits == "" {
		return fmt.Errorf("phone number is required")
	}
	if len(digits) != 10 {
		return fmt.Errorf("phone number must be exactly 10 digits")
	}
	if digits[0] < '6' || digits[0] > '9' {
		return fmt.Errorf("phone number must start with 6-9")
	}
	return nil
}

// ValidateAWB checks a courier air waybill number
func ValidateAWB(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("AWB number is required")
	}
	if utf8.RuneCountInString(trimmed) < 8 {
		return fmt.Errorf("AWB number must be at least 8 characters")
	}
	return nil
}

// ValidateDestination checks a delivery destination address
func ValidateDestination(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("destination is required")
	}
	if utf8.RuneCountInString(trimmed) < 10 {
		return fmt.Errorf("destination must be at least 10 characters")
	}
	return nil
}

// ValidateName checks a person or contact name
func ValidateName(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(trimmed) < 3 {
		return fmt.Errorf("name must be at least 3 characters")
	}
	return nil
}

// ValidateIDProof checks an identity proof number for in-person pickups
func ValidateIDProof(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("ID proof is required")
	}
	if utf8.RuneCountInString(trimmed) < 6 {
		return fmt.Errorf("ID proof must be at least 6 characters")
	}
	return nil
}

// RegisterCustomValidations registers custom validation functions
func RegisterCustomValidations() {
	validate.RegisterValidation("truckno", func(fl validator.FieldLevel) bool {
		return ValidateTruckNumber(fl.Field().String()) == nil
	})

	validate.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	})

	validate.RegisterValidation("awb", func(fl validator.FieldLevel) bool {
		return ValidateAWB(fl.Field().String()) == nil
	})

	validate.RegisterValidation("destination", func(fl validator.FieldLevel) bool {
		return ValidateDestination(fl.Field().String()) == nil
	})

	validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return ValidateName(fl.Field().String()) == nil
	})

	validate.RegisterValidation("idproof", func(fl validator.FieldLevel) bool {
		return ValidateIDProof(fl.Field().String()) == nil
	})
}
