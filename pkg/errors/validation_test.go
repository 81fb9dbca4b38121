package errors

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"valid", "header/aside,main/footer", ""},
		{"valid single", "main", ""},

		{"empty", "", ErrCodeGrammar},
		{"too long", strings.Repeat("a", MaxQueryLength+1), ErrCodeInvalidInput},
		{"null byte", "a\x00b", ErrCodeInvalidInput},
		{"multi-line", "header/\n\tnav,main\r\n/footer", ""},
		{"escape", "a\x1bb", ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateQuery(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateContainer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"class", ".grid-container", false},
		{"id", "#app", false},
		{"tag", "main", false},
		{"tag with class", "section.grid", false},

		{"empty", "", true},
		{"space", ".a b", true},
		{"tab", ".a\tb", true},
		{"slash", ".a/b", true},
		{"comma", ".a,.b", true},
		{"star", ".a*2", true},
		{"too long", "." + strings.Repeat("x", MaxSelectorLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContainer(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContainer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSelector) {
				t.Errorf("ValidateContainer(%q) code = %q, want %q", tt.input, GetCode(err), ErrCodeInvalidSelector)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		cols, rows int
		wantErr    bool
	}{
		{1, 1, false},
		{2, 3, false},
		{MaxDimension, MaxDimension, false},
		{0, 1, true},
		{1, 0, true},
		{-1, 2, true},
		{MaxDimension + 1, 1, true},
	}

	for _, tt := range tests {
		err := ValidateDimensions(tt.cols, tt.rows)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.cols, tt.rows, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidDimensions) {
			t.Errorf("ValidateDimensions(%d, %d) code = %q", tt.cols, tt.rows, GetCode(err))
		}
	}
}

func TestValidateLayoutName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"holy-grail", false},
		{"3-col", false},
		{"dashboard", false},
		{"", true},
		{"Holy-Grail", true},
		{"-leading", true},
		{"with space", true},
		{"../etc", true},
	}

	for _, tt := range tests {
		err := ValidateLayoutName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayoutName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
