// Package output serializes item records for storage and display.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/law-makers/itemscrape/pkg/models"
)

// Format is a structured text format for item records
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q (must be json or yaml)", s)
	}
}

// Ext returns the file extension for the format, without the dot
func (f Format) Ext() string {
	return string(f)
}

// Encode writes rec to w in format f
func Encode(w io.Writer, rec *models.ItemRecord, f Format) error {
	switch f {
	case FormatJSON:
		return encodeJSON(w, rec)
	case FormatYAML:
		return encodeYAML(w, rec)
	default:
		return fmt.Errorf("unsupported format: %q", f)
	}
}

// Decode reads one record from r in format f
func Decode(r io.Reader, f Format) (*models.ItemRecord, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("unsupported format: %q", f)
	}
}

// Save writes rec to path, creating parent directories as needed
func Save(path string, rec *models.ItemRecord, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := Encode(file, rec, f); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

// Load reads a record saved with Save
func Load(path string, f Format) (*models.ItemRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rec, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rec, nil
}

// OutputPath maps a page file to its record file in dir:
// "pages/id=123.html" becomes "<dir>/id=123.yaml".
func OutputPath(pagePath, dir string, f Format) string {
	base := filepath.Base(pagePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"."+f.Ext())
}
