// Package token defines lexical token kinds for the Rex scanner.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     multiline strings whose segments are joined once.
//   - Token.Pos is the position of the first source character of the token.
//   - Every Kind except Illegal and EOF renders to a unique canonical text.
//   - Comments never produce tokens; newlines always do.
//   - Literal payloads (Integer, Float) stay textual. Numeric conversion
//     belongs to later stages.
package token
