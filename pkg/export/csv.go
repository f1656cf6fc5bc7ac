// Package export writes harvested records to CSV and JSON.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
)

// utf8BOM makes the CSV open cleanly in Excel and Google Sheets.
const utf8BOM = "\ufeff"

// WriteCSV writes the records with the fixed column order and a UTF-8
// byte-order mark.
func WriteCSV(w io.Writer, records []metadata.Record) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(metadata.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(rec.Row(metadata.Columns)); err != nil {
			return fmt.Errorf("writing record %s: %w", rec.Identifier, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the records to path, creating or truncating it.
func WriteCSVFile(path string, records []metadata.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

// OutputPath builds "persee_<filter>_<timestamp>.<ext>" under dir. An
// empty filter collapses to "persee_<timestamp>.<ext>".
func OutputPath(dir, filter, ext string, now time.Time) string {
	parts := []string{"persee"}
	if filter != "" {
		parts = append(parts, filter)
	}
	parts = append(parts, now.Format("20060102_1504"))
	return filepath.Join(dir, strings.Join(parts, "_")+"."+ext)
}
