package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects where events go.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // written as they happen
	ModeRing                   // kept in memory for the failure dump
	ModeBoth
)

// ParseMode reads a --trace-mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return 0, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer a command asked for.
type Config struct {
	Level    Level
	Mode     Mode
	Format   Format
	Output   io.Writer // takes precedence over Path
	Path     string    // "" or "-" means stderr
	RingSize int
}

// Open builds the tracer for cfg. LevelOff yields Nop; LevelError keeps
// events in the ring only, whatever the mode.
func Open(cfg Config) (Tracer, error) {
	switch {
	case cfg.Level == LevelOff:
		return Nop, nil
	case cfg.Level == LevelError, cfg.Mode == ModeRing:
		return NewRing(cfg.RingSize, cfg.Level), nil
	case cfg.Mode != ModeStream && cfg.Mode != ModeBoth:
		return nil, fmt.Errorf("unknown trace mode: %d", cfg.Mode)
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.Path)
	}
	stream := NewWriter(w, cfg.Level, format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return &tee{tracers: []Tracer{stream, NewRing(cfg.RingSize, cfg.Level)}, level: cfg.Level}, nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.Path == "" || cfg.Path == "-" {
		return struct{ io.Writer }{os.Stderr}, nil
	}
	f, err := os.Create(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".jsonl", ".json":
		return FormatNDJSON
	}
	return FormatText
}
