package diag

// Severity ranks a diagnostic; only SevError fails a scan.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// severityText holds the rendered forms: the upper case one for terminal
// output, the lower case one for golden files and JSON.
var severityText = [...][2]string{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// Valid reports whether s is one of the defined severities. Cached
// diagnostics are checked with it before use.
func (s Severity) Valid() bool { return int(s) < len(severityText) }

func (s Severity) String() string {
	if !s.Valid() {
		return "UNKNOWN"
	}
	return severityText[s][0]
}

// Label is the lower case name used in golden output.
func (s Severity) Label() string {
	if !s.Valid() {
		return "unknown"
	}
	return severityText[s][1]
}
