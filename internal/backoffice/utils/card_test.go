package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"visa test number", "4111111111111111", true},
		{"with spaces", "4111 1111 1111 1111", true},
		{"with dashes", "4111-1111-1111-1111", true},
		{"luhn failure", "4111111111111112", false},
		{"too short", "41111111111", false},
		{"non-digit", "4111x11111111111", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCardNumber(tt.number))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("1234567890"))
	assert.False(t, IsNumeric("12a4"))
	assert.False(t, IsNumeric(""))
}
