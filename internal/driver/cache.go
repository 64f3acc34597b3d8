package driver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rex/internal/diag"
	"rex/internal/diagfmt"
	"rex/internal/project"
	"rex/internal/source"
	"rex/internal/token"
)

// Current schema version - increment when CachePayload or the scanner output changes
const tokenCacheSchemaVersion uint16 = 2

// TokenCache хранит потоки токенов на диске по хешу содержимого файла.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the on-disk form of one scanned file.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	File   string // logical name stamped on tokens
	Path   string // path the diagnostics refer to
	Tokens []diagfmt.TokenRecord
	Diags  []CachedDiagnostic
}

// CachedDiagnostic is a lexical diagnostic without its file name.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Line     uint32
	Col      uint32
	Message  string
}

// OpenTokenCache initializes a cache under $XDG_CACHE_HOME/<app>
// (or ~/.cache/<app>).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTokenCache(filepath.Join(base, app))
}

// NewTokenCache uses dir as the cache root, creating it if needed.
func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

// CacheKey mixes the file hash with everything else that shapes the cached
// result: schema, file name and diagnostic limit.
func CacheKey(file *source.File, maxDiagnostics int) project.Digest {
	var meta [10]byte
	binary.LittleEndian.PutUint16(meta[:2], tokenCacheSchemaVersion)
	binary.LittleEndian.PutUint64(meta[2:], uint64(max(maxDiagnostics, 0)))
	return project.Combine(project.Digest(file.Hash), meta[:], []byte(file.Path))
}

func (c *TokenCache) pathFor(key project.Digest) string {
	// Токены живут в своём подкаталоге "tokens", его проще читать и чистить.
	return filepath.Join(c.dir, "tokens", key.Hex()+".mp")
}

// Put serializes and writes the token stream of file with its diagnostics.
func (c *TokenCache) Put(key project.Digest, file *source.File, tokens []token.Token, diags []diag.Diagnostic) (err error) {
	if c == nil {
		return nil
	}
	payload := CachePayload{
		Schema: tokenCacheSchemaVersion,
		File:   file.Name(),
		Path:   file.Path,
		Tokens: diagfmt.Records(tokens),
		Diags:  make([]CachedDiagnostic, 0, len(diags)),
	}
	for _, d := range diags {
		payload.Diags = append(payload.Diags, CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Line:     d.Pos.Line,
			Col:      d.Pos.Col,
			Message:  d.Message,
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached stream. ok is false on a miss or a schema mismatch.
func (c *TokenCache) Get(key project.Digest) (tokens []token.Token, diags []diag.Diagnostic, ok bool, err error) {
	if c == nil {
		return nil, nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if payload.Schema != tokenCacheSchemaVersion {
		return nil, nil, false, nil
	}

	tokens, err = diagfmt.Restore(diagfmt.TokenDump{File: payload.File, Tokens: payload.Tokens})
	if err != nil {
		return nil, nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	diags = make([]diag.Diagnostic, 0, len(payload.Diags))
	for _, d := range payload.Diags {
		if !diag.Severity(d.Severity).Valid() {
			return nil, nil, false, fmt.Errorf("decode %s: bad severity %d", f.Name(), d.Severity)
		}
		diags = append(diags, diag.New(
			diag.Severity(d.Severity),
			diag.Code(d.Code),
			payload.Path,
			source.Position{Line: d.Line, Col: d.Col},
			d.Message,
		))
	}
	return tokens, diags, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
