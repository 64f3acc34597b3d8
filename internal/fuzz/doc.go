// Package fuzztests houses Go fuzz harnesses for the Rex scanner. Its goal is
// to guard against panics, endless loops and broken stream invariants on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через сканер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag, internal/testkit.

package fuzztests
