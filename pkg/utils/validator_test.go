package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateThaiCitizenID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "1101702071712", false},
		{"wrong check digit", "1101702071710", true},
		{"too short", "110170207171", true},
		{"too long", "11017020717121", true},
		{"letters", "11017020717ab", true},
		{"letter check digit", "110170207171x", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThaiCitizenID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePaymentReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"typical gateway reference", "PAY-123456", false},
		{"digits only", "202609010001", false},
		{"minimum length", "ABC123", false},
		{"too short", "PAY-1", true},
		{"lowercase", "pay-123456", true},
		{"leading dash", "-AY123456", true},
		{"embedded space", "PAY 123456", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentReference(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Baan Suan", SanitizeString("Baan\x00 Suan\x1f"))
	assert.Equal(t, "no change", SanitizeString("no change"))
	assert.Equal(t, "", SanitizeString("\x00\x01\x7f"))
}
