package errors

import (
	"strings"
	"unicode"
)

// ValidOutputFormats is the set of artifact formats the renderers produce.
var ValidOutputFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"pdf":  true,
	"json": true,
	"dot":  true,
}

// ValidateFormat validates a single output format string.
func ValidateFormat(format string) error {
	if !ValidOutputFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats validates a list of output formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	"schematic":   true,
	"constraints": true,
}

// ValidateVizType validates a visualization type string.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return New(ErrCodeInvalidVizType, "invalid viz type: %q (must be 'schematic' or 'constraints')", vizType)
	}
	return nil
}

// ValidateScale validates a render scale factor.
// Scale controls pixels per board unit; zero means "use the default".
func ValidateScale(scale float64) error {
	if scale < 0 {
		return New(ErrCodeInvalidInput, "scale must not be negative, got %g", scale)
	}
	if scale > 100 {
		return New(ErrCodeInvalidInput, "scale too large (max 100), got %g", scale)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateComponentKind validates a component kind string from external
// input (profiles, API requests) before it reaches the typed model.
func ValidateComponentKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidInput, "component kind cannot be empty")
	}
	for _, r := range kind {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "component kind contains invalid control characters")
		}
	}
	if strings.ContainsAny(kind, "/\\") {
		return New(ErrCodeInvalidInput, "component kind cannot contain path separators")
	}
	return nil
}
