// Package load reads datasets from files.
//
// Supported formats are CSV, JSON (an array of objects), YAML (a sequence of
// mappings), XLSX (first sheet, first row is the header), JSON graphs of
// the form {"nodes": [...], "links": [...]} and GeoJSON feature collections. Tabular input goes through a
// single coercion pass ([Table]) that assigns every column a kind.
package load

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// Format identifies an input encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXLSX  Format = "xlsx"
	FormatGraph Format = "graph"
	FormatGeo   Format = "geojson"
)

// Formats lists every supported input format.
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML, FormatXLSX, FormatGraph, FormatGeo}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", s)
}

// Detect guesses the format from a file extension. JSON files holding a
// graph or a feature collection are recognized later by [Read].
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".geojson":
		return FormatGeo, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %s", path)
	}
}

// File loads path and also returns the raw bytes for hashing. An empty
// format is detected from the extension; a .tsv file defaults to tab
// separated fields.
func File(path string, format Format, opts Options) (*data.Dataset, []byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	if format == "" {
		f, err := Detect(path)
		if err != nil {
			return nil, nil, err
		}
		format = f
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "read %s", path)
	}
	if opts.Comma == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Comma = '\t'
	}
	ds, err := Read(bytes.NewReader(raw), format, opts)
	if err != nil {
		return nil, nil, err
	}
	return ds, raw, nil
}

// Options tune tabular decoding.
type Options struct {
	Comma rune   // CSV field separator, default ','
	Sheet string // XLSX sheet name, default first sheet
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format, opts Options) (*data.Dataset, error) {
	var (
		ds  *data.Dataset
		err error
	)
	switch format {
	case FormatCSV:
		ds, err = CSV(r, opts.Comma)
	case FormatJSON:
		ds, err = JSON(r)
	case FormatYAML:
		ds, err = YAML(r)
	case FormatXLSX:
		ds, err = XLSX(r, opts.Sheet)
	case FormatGraph:
		ds, err = Graph(r)
	case FormatGeo:
		ds, err = GeoJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
	if err != nil {
		if errors.GetCode(err) == "" {
			return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "decode %s", format)
		}
		return nil, err
	}
	return ds, nil
}
