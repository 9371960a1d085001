package errors

import (
	"math"
	"testing"
)

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "year", false},
		{"with space", "Total Sales", false},
		{"unicode", "Bevölkerung", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"valid", 960, 500, false},
		{"zero width", 0, 500, true},
		{"negative height", 960, -1, true},
		{"nan", math.NaN(), 500, true},
		{"inf", 960, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateFraction(t *testing.T) {
	for _, v := range []float64{0, 0.1, 0.99} {
		if err := ValidateFraction("padding", v); err != nil {
			t.Errorf("ValidateFraction(%v) = %v, want nil", v, err)
		}
	}
	for _, v := range []float64{-0.1, 1, 2, math.NaN()} {
		if err := ValidateFraction("padding", v); err == nil {
			t.Errorf("ValidateFraction(%v) = nil, want error", v)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/sales.csv", false},
		{"absolute", "/tmp/out.svg", false},

		{"empty", "", true},
		{"null byte", "a\x00b", true},
		{"control", "a\x07b", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
