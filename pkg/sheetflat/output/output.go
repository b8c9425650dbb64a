// Package output writes flattened tables and run summaries.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
)

// Format is an output container format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFor infers the format from a path extension; unknown extensions
// default to xlsx.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// WriteFile writes the table to path in the given format. The file is first
// written to a temporary file next to path and renamed into place, so path
// never holds a partial table.
func WriteFile(path string, format Format, table *models.DataTable) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	switch format {
	case FormatCSV:
		err = WriteCSV(tmp, table)
	case FormatXLSX:
		err = WriteXLSX(tmp, table)
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %q: %w", path, err)
	}
	return nil
}

// ToJSON serializes a run summary.
func ToJSON(summary *models.Summary, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// BatchResultToJSON serializes the outcome of one batch file.
func BatchResultToJSON(inputPath string, summary *models.Summary, errMsg string, pretty bool) ([]byte, error) {
	v := struct {
		InputPath string          `json:"input_path"`
		Success   bool            `json:"success"`
		Summary   *models.Summary `json:"summary,omitempty"`
		Error     string          `json:"error,omitempty"`
	}{
		InputPath: inputPath,
		Success:   errMsg == "",
		Summary:   summary,
		Error:     errMsg,
	}
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
