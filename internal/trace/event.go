package trace

import "time"

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one CLI command
	ScopeDir                      // one directory walk
	ScopeFile                     // load and scan of one source
	ScopeLog                      // bridged log records
)

var scopeNames = [...]string{"", "command", "dir", "file", "log"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && s != 0 {
		return scopeNames[s]
	}
	return "unknown"
}

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Event is one trace record. Counts are only meaningful on KindEnd events of
// spans that called SetCounts.
type Event struct {
	Seq     uint64
	Time    time.Time
	Elapsed time.Duration // span duration, KindEnd only
	Kind    Kind
	Scope   Scope
	Span    uint64
	Parent  uint64
	Name    string
	File    string
	Tokens  int
	Diags   int
	Cached  bool
	Note    string
	Attrs   map[string]string
}
