package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Name returns the logical file name used in tokens and diagnostics.
func (f *File) Name() string {
	return BaseName(f.Path)
}

// Text returns the file content as a string. The content is copied once.
func (f *File) Text() string {
	return string(f.Content)
}

// Position is a human-readable location in a source file.
type Position struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// StartPosition is the position of the first character of a file.
var StartPosition = Position{Line: 1, Col: 1}

// IsValid reports whether both coordinates are 1-based and non-zero.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Col > 0
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
