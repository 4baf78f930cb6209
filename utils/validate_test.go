package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("  user@example.com  "))
	assert.False(t, ValidEmail("user"))
	assert.False(t, ValidEmail("user@example"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("9876543210"))
	assert.False(t, ValidPhone("987654321"))
	assert.False(t, ValidPhone("98765432100"))
	assert.False(t, ValidPhone("98765abc10"))
	assert.False(t, ValidPhone(""))
}

func TestValidPincode(t *testing.T) {
	assert.True(t, ValidPincode("682030"))
	assert.False(t, ValidPincode("68203"))
	assert.False(t, ValidPincode("6820301"))
	assert.False(t, ValidPincode("68two0"))
}

func TestValidUPITransactionID(t *testing.T) {
	assert.True(t, ValidUPITransactionID("123456789012"))
	assert.True(t, ValidUPITransactionID(" 123456789012 "))
	assert.False(t, ValidUPITransactionID("12345678901"))
	assert.False(t, ValidUPITransactionID("1234567890123"))
	assert.False(t, ValidUPITransactionID("12345678901a"))
	assert.False(t, ValidUPITransactionID(""))
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{" 5 ", 5, true},
		{"0", 0, false},
		{"-2", 0, false},
		{"2.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseQuantity(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
