package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/boardfit/pkg/errors"
)

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., layout.svg, layout.json).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Strip known format extensions from output path
	ext := filepath.Ext(output)
	if errors.ValidOutputFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput creates the output file, making parent directories as needed.
func openOutput(path string) (*os.File, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return os.Create(path)
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input path the default output name derives from
	output    string // explicit output path or base path; may be empty
	cacheHit  bool
}

// writeArtifacts writes rendered artifacts to disk, one file per format.
// A single format goes to the output path directly; multiple formats share
// a base path and get their format as extension.
func writeArtifacts(p artifactWriteParams) error {
	single := len(p.formats) == 1

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		var path string
		if single && p.output != "" {
			path = p.output
		} else {
			path = basePath(p.output, p.input) + "." + format
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return err
		}

		printFile(path)
	}

	if p.cacheHit {
		printDetail("artifacts from cache")
	}
	return nil
}
