package render

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/render/nodelink"
)

// Format names.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
)

// Formats lists the supported formats.
var Formats = []string{FormatTable, FormatJSON, FormatDOT, FormatSVG}

// ValidateFormat checks that format is supported. Names are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want one of %v)", format, Formats)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Render encodes m in format.
func Render(ctx context.Context, m radar.Matrix, format string) ([]byte, error) {
	switch format {
	case FormatTable:
		return []byte(Table(m)), nil
	case FormatJSON:
		return JSON(m)
	case FormatDOT:
		return []byte(nodelink.ToDOT(m, nodelink.Options{Detailed: true})), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(m, nodelink.Options{}))
	}
	return nil, ValidateFormat(format)
}

// JSON encodes m as indented JSON with a trailing newline.
func JSON(m radar.Matrix) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode matrix: %w", err)
	}
	return append(data, '\n'), nil
}
