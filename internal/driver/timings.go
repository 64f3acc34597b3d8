package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"rex/internal/observ"
)

type timingPayload struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	observ.Report
}

// WriteTimings prints the timer either as the text summary or as one JSON
// object tagged with kind ("tokenize", "tokenize-dir", ...).
func WriteTimings(w io.Writer, kind, path string, timer *observ.Timer, asJSON bool) error {
	if timer == nil {
		return nil
	}
	if !asJSON {
		header := kind
		if path != "" {
			header = fmt.Sprintf("%s %s", kind, path)
		}
		_, err := fmt.Fprintf(w, "%s\n%s", header, timer.Summary())
		return err
	}
	if kind == "" {
		kind = "pipeline"
	}
	return json.NewEncoder(w).Encode(timingPayload{Kind: kind, Path: path, Report: timer.Report()})
}
