package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLuhn(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		wantErr    bool
	}{
		{
			name:       "valid card number",
			cardNumber: "4539148803436467",
			wantErr:    false,
		},
		{
			name:       "same number with flipped check digit",
			cardNumber: "4539148803436468",
			wantErr:    true,
		},
		{
			name:       "valid issued card",
			cardNumber: "4000008979544025",
			wantErr:    false,
		},
		{
			name:       "invalid card number",
			cardNumber: "1234567890123456",
			wantErr:    true,
		},
		{
			name:       "empty card number",
			cardNumber: "",
			wantErr:    true,
		},
		{
			name:       "non-numeric card",
			cardNumber: "abcd1234efgh5678",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLuhn(tt.cardNumber)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		wantErr    bool
	}{
		{
			name:       "valid 16-digit card",
			cardNumber: "4000008979544025",
			wantErr:    false,
		},
		{
			name:       "too short",
			cardNumber: "400000897954402",
			wantErr:    true,
		},
		{
			name:       "too long",
			cardNumber: "40000089795440250",
			wantErr:    true,
		},
		{
			name:       "not a card at all",
			cardNumber: "not-a-card",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardNumber(tt.cardNumber)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		length  int
		wantErr bool
	}{
		{
			name:   "valid 4-digit PIN",
			pin:    "0415",
			length: 4,
		},
		{
			name:    "too short",
			pin:     "041",
			length:  4,
			wantErr: true,
		},
		{
			name:    "too long",
			pin:     "04155",
			length:  4,
			wantErr: true,
		},
		{
			name:    "non-numeric",
			pin:     "04a5",
			length:  4,
			wantErr: true,
		},
		{
			name:    "empty",
			pin:     "",
			length:  4,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.pin, tt.length)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1))
	assert.NoError(t, ValidateAmount(100000))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-5))
}
