package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "routes/AutoDrive_config.xml", false},
		{"absolute", "/tmp/AutoDrive_config.xml", false},
		{"with spaces", "my routes/config.xml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
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

func TestValidateSelectionRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  int64
		wantErr bool
	}{
		{"default window", 23, 36, false},
		{"single id", 5, 5, false},
		{"zero start", 0, 10, true},
		{"negative start", -1, 10, true},
		{"reversed", 36, 23, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelectionRange(tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelectionRange(%d, %d) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSelection) {
				t.Errorf("expected INVALID_SELECTION, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"green", false},
		{"#f80", false},
		{"#FF8800", false},
		{"", true},
		{"#12", true},
		{"#gggggg", true},
		{"Red", true},
		{"url(#x)", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
