package lexer

import (
	"fmt"
	"unicode/utf8"

	"rex/internal/source"

	"fortio.org/safecast"
)

// maxAdvance ограничивает Advance, ни одна конструкция не длиннее трёх символов.
const maxAdvance = 3

// Cursor хранит позицию в тексте вместе с координатами текущей руны.
type Cursor struct {
	src  string
	Off  int // байтовое смещение текущей руны
	ch   rune
	size int
	Pos  source.Position // позиция текущей руны
}

// NewCursor creates a cursor at the first rune of src.
func NewCursor(src string) Cursor {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	c := Cursor{src: src, Pos: source.StartPosition}
	c.load()
	return c
}

func (c *Cursor) load() {
	if c.Off >= len(c.src) {
		c.ch, c.size = 0, 0
		return
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		c.ch, c.size = rune(b), 1
		return
	}
	c.ch, c.size = utf8.DecodeRuneInString(c.src[c.Off:])
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.src)
}

// Current возвращает текущую руну, 0 за концом текста.
func (c *Cursor) Current() rune {
	return c.ch
}

// Peek возвращает руну сразу после текущей, 0 за концом текста.
func (c *Cursor) Peek() rune {
	return c.PeekAt(1)
}

// PeekAt возвращает руну на k позиций дальше текущей, не сдвигая курсор.
func (c *Cursor) PeekAt(k int) rune {
	off, size := c.Off, c.size
	for ; k > 0; k-- {
		off += size
		if off >= len(c.src) {
			return 0
		}
		if b := c.src[off]; b < utf8.RuneSelf {
			size = 1
		} else {
			_, size = utf8.DecodeRuneInString(c.src[off:])
		}
	}
	if off >= len(c.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[off:])
	return r
}

// Advance сдвигает курсор на n рун (n зажимается в [0, 3]).
// Колонка растёт на каждую руну; после '\n' строка растёт, колонка = 1.
func (c *Cursor) Advance(n int) {
	n = max(0, min(n, maxAdvance))
	for range n {
		if c.EOF() {
			return
		}
		consumed := c.ch
		c.Off += c.size
		if consumed == '\n' {
			c.Pos.Line++
			c.Pos.Col = 1
		} else {
			c.Pos.Col++
		}
		c.load()
	}
}

// Bump перемещает курсор на одну руну вперед и возвращает прочитанную руну
func (c *Cursor) Bump() rune {
	r := c.ch
	c.Advance(1)
	return r
}

// Eat consumes the current rune if it matches r.
func (c *Cursor) Eat(r rune) bool {
	if !c.EOF() && c.ch == r {
		c.Advance(1)
		return true
	}
	return false
}

// Mark это метка, что бы быстро получать текст читаемого фрагмента
type Mark struct {
	off int
	pos source.Position
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, pos: c.Pos}
}

// Pos returns the position recorded by the mark.
func (m Mark) Pos() source.Position { return m.pos }

// TextFrom возвращает срез исходника от метки до курсора
func (c *Cursor) TextFrom(m Mark) string {
	return c.src[m.off:c.Off]
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = m.off
	c.Pos = m.pos
	c.load()
}
