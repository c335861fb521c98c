package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// outputJSON writes v as indented JSON for scripting and piping into jq.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
