package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // by output file extension
	FormatText                 // one readable line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat reads a --trace-format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

var startedAt = time.Now()

// Encode renders ev as one line, newline included.
func Encode(ev Event, format Format) []byte {
	if format == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type jsonEvent struct {
	Seq       uint64            `json:"seq"`
	Time      string            `json:"time"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	Span      uint64            `json:"span,omitempty"`
	Parent    uint64            `json:"parent,omitempty"`
	Name      string            `json:"name"`
	File      string            `json:"file,omitempty"`
	ElapsedUS int64             `json:"elapsed_us,omitempty"`
	Tokens    int               `json:"tokens,omitempty"`
	Diags     int               `json:"diags,omitempty"`
	Cached    bool              `json:"cached,omitempty"`
	Note      string            `json:"note,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

func encodeJSON(ev Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Seq:       ev.Seq,
		Time:      ev.Time.UTC().Format(time.RFC3339Nano),
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		Span:      ev.Span,
		Parent:    ev.Parent,
		Name:      ev.Name,
		File:      ev.File,
		ElapsedUS: ev.Elapsed.Microseconds(),
		Tokens:    ev.Tokens,
		Diags:     ev.Diags,
		Cached:    ev.Cached,
		Note:      ev.Note,
		Attrs:     ev.Attrs,
	})
	if err != nil {
		data = fmt.Appendf(nil, `{"name":%q,"error":%q}`, ev.Name, err.Error())
	}
	return append(data, '\n')
}

// encodeText: "[   1.234ms] file  → scan main.rx tokens=12 (note) {k=v}".
func encodeText(ev Event) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "[%9.3fms] %-7s ", float64(ev.Time.Sub(startedAt).Microseconds())/1000, ev.Scope)
	switch ev.Kind {
	case KindBegin:
		b.WriteString("→ ")
	case KindEnd:
		b.WriteString("← ")
	default:
		b.WriteString("• ")
	}
	b.WriteString(ev.Name)
	if ev.File != "" {
		b.WriteString(" " + ev.File)
	}
	if ev.Kind == KindEnd {
		fmt.Fprintf(&b, " %s", ev.Elapsed.Round(time.Microsecond))
		if ev.Tokens > 0 || ev.Diags > 0 {
			b.WriteString(" tokens=" + strconv.Itoa(ev.Tokens) + " diags=" + strconv.Itoa(ev.Diags))
		}
		if ev.Cached {
			b.WriteString(" cached")
		}
	}
	if ev.Note != "" {
		b.WriteString(" (" + ev.Note + ")")
	}
	if len(ev.Attrs) > 0 {
		b.WriteString(" {")
		for i, k := range slices.Sorted(maps.Keys(ev.Attrs)) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k + "=" + ev.Attrs[k])
		}
		b.WriteString("}")
	}
	b.WriteByte('\n')
	return []byte(b.String())
}
