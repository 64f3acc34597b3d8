package diag

import (
	"rex/internal/source"
)

type Note struct {
	Pos source.Position
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// File is the logical file name the scanner was given.
	File  string
	Pos   source.Position
	Notes []Note
}

// Location renders "file:line:col", or just "line:col" without a file.
func (d Diagnostic) Location() string {
	if d.File == "" {
		return d.Pos.String()
	}
	return d.File + ":" + d.Pos.String()
}
