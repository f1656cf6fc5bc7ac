package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
)

// WriteJSON writes the records as an indented JSON array. HTML escaping
// is off so accented characters and &<> come through verbatim.
func WriteJSON(w io.Writer, records []metadata.Record) error {
	if records == nil {
		records = []metadata.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// WriteJSONFile writes the records to path, creating or truncating it.
func WriteJSONFile(path string, records []metadata.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(f, records); err != nil {
		return err
	}
	return f.Close()
}
