package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// tableJSON is the JSON shape of a table.
type tableJSON struct {
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	Entries []string `json:"entries,omitempty"`
}
