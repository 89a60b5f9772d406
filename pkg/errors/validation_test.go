package errors

import (
	"strings"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"svg", "svg", false},
		{"png", "png", false},
		{"pdf", "pdf", false},
		{"json", "json", false},
		{"dot", "dot", false},
		{"uppercase", "SVG", true},
		{"unknown", "gif", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.format, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"single valid", []string{"svg"}, false},
		{"multiple valid", []string{"svg", "png", "json"}, false},
		{"empty list", []string{}, false},
		{"one invalid", []string{"svg", "bmp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		name    string
		vizType string
		wantErr bool
	}{
		{"schematic", "schematic", false},
		{"constraints", "constraints", false},
		{"unknown", "heatmap", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVizType(tt.vizType)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVizType) {
				t.Errorf("ValidateVizType(%q) code = %v, want %v", tt.vizType, GetCode(err), ErrCodeInvalidVizType)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		wantErr bool
	}{
		{"default zero", 0, false},
		{"normal", 12, false},
		{"max", 100, false},
		{"negative", -1, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale(tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScale(%v) error = %v, wantErr %v", tt.scale, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "out.svg", false},
		{"nested", "renders/board.png", false},
		{"absolute", "/tmp/board.svg", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"control char", "out\x00.svg", true},
		{"newline", "out\n.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateComponentKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{"valid", "usb_connector", false},
		{"another valid", "mikrobus_connector_1", false},
		{"empty", "", true},
		{"path separator", "usb/connector", true},
		{"backslash", "usb\\connector", true},
		{"control char", "usb\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentKind(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentKind(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
		})
	}
}
