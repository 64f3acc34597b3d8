package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexIllegalChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedRegex  Code = 1003
	LexEmbeddedNUL        Code = 1004

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOBadExtension  Code = 4002

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexIllegalChar:        "Illegal character",
		LexUnterminatedString: "Unterminated string literal",
		LexUnterminatedRegex:  "Unterminated regex literal",
		LexEmbeddedNUL:        "NUL character inside source",
		IOInfo:                "I/O information",
		IOLoadFileError:       "I/O load file error",
		IOBadExtension:        "Unexpected file extension",
		ProjInfo:              "Project information",
		ProjManifestInvalid:   "Invalid project manifest",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
