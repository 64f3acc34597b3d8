package diag

import "rex/internal/source"

func New(sev Severity, code Code, file string, pos source.Position, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		File:     file,
		Pos:      pos,
		Message:  msg,
		Notes:    nil,
	}
}

func NewError(code Code, file string, pos source.Position, msg string) Diagnostic {
	return New(SevError, code, file, pos, msg)
}

func (d Diagnostic) WithNote(pos source.Position, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Msg: msg})
	return d
}
