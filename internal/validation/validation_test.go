package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateTruckNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain registration", "MH12AB1234", false},
		{"lowercase with spaces", "mh 12 ab 1234", false},
		{"single series letter", "DL05C6789", false},
		{"too short", "MH1234", true},
		{"empty", "", true},
		{"missing series", "MH121234", true},
		{"trailing garbage", "MH12AB12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTruckNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNormalizeTruckNumber(t *testing.T) {
	require.Equal(t, "MH12AB1234", NormalizeTruckNumber("mh 12 ab 1234"))
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid mobile", "9876543210", false},
		{"with separators", "98765-43210", false},
		{"leading digit below 6", "1234567890", true},
		{"too short", "987654321", true},
		{"too long", "98765432101", true},
		{"empty", "", true},
		{"letters only", "abcdefghij", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateAWB(t *testing.T) {
	require.NoError(t, ValidateAWB("AWB12345"))
	require.Error(t, ValidateAWB("AWB123"))
	require.Error(t, ValidateAWB(""))
}

func TestValidateDestination(t *testing.T) {
	require.NoError(t, ValidateDestination("Pune, Maharashtra"))
	require.Error(t, ValidateDestination("Pune"))
	require.Error(t, ValidateDestination("   "))
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Ravi"))
	require.Error(t, ValidateName("Ra"))
	require.Error(t, ValidateName(""))
}

// Length rules count characters, not bytes: Devanagari text is common on
// delivery paperwork in this domain.
func TestLengthRulesCountRunes(t *testing.T) {
	// 3 runes, 9 bytes
	require.NoError(t, ValidateName("राम"))
	// 2 runes, 6 bytes: would wrongly pass a byte-length check
	require.Error(t, ValidateName("रा"))

	// 13 runes
	require.NoError(t, ValidateDestination("पुणे औद्योगिक"))
	// 6 runes, 18 bytes: would wrongly pass a byte-length check
	require.Error(t, ValidateDestination("भिवंडी"))
}

func TestValidateIDProof(t *testing.T) {
	require.NoError(t, ValidateIDProof("DL-0420110012345"))
	require.Error(t, ValidateIDProof("12345"))
	require.Error(t, ValidateIDProof(""))
}

func TestCustomValidationTags(t *testing.T) {
	type payload struct {
		TruckNumber string `validate:"truckno"`
		Phone       string `validate:"inphone"`
	}

	require.NoError(t, ValidateStruct(payload{TruckNumber: "MH12AB1234", Phone: "9876543210"}))
	require.Error(t, ValidateStruct(payload{TruckNumber: "MH1234", Phone: "9876543210"}))
	require.Error(t, ValidateStruct(payload{TruckNumber: "MH12AB1234", Phone: "1234567890"}))
}
