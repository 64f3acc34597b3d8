package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrManifestInvalid wraps every semantic problem found in rex.toml.
var ErrManifestInvalid = errors.New("invalid manifest")

// Defaults used when rex.toml is absent or leaves a key out.
const (
	DefaultCompileExt     = "rx"
	DefaultRunExt         = "rxi"
	DefaultMaxDiagnostics = 100
)

// Manifest is a loaded rex.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the rex.toml layout:
//
//	[package]
//	name = "demo"
//
//	[scan]
//	compile_ext = "rx"
//	run_ext = "rxi"
//	max_diagnostics = 100
//	jobs = 0
type Config struct {
	Package PackageConfig `toml:"package"`
	Scan    ScanConfig    `toml:"scan"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// ScanConfig holds the scanning knobs the CLI also exposes as flags.
type ScanConfig struct {
	CompileExt     string `toml:"compile_ext"`
	RunExt         string `toml:"run_ext"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"` // 0 - по числу CPU
}

// DefaultConfig returns the configuration used without a manifest.
func DefaultConfig() Config {
	return Config{
		Scan: ScanConfig{
			CompileExt:     DefaultCompileExt,
			RunExt:         DefaultRunExt,
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
	}
}

// LoadManifest finds rex.toml above startDir and decodes it.
// ok is false when there is no manifest; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes one rex.toml file, filling omitted [scan] keys with
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w: missing [package]", path, ErrManifestInvalid)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w: missing [package].name", path, ErrManifestInvalid)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: unknown key %q", path, ErrManifestInvalid, undecoded[0].String())
	}
	if err := cfg.Scan.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", path, ErrManifestInvalid, err)
	}
	return cfg, nil
}

func (s *ScanConfig) validate() error {
	s.CompileExt = strings.TrimPrefix(strings.TrimSpace(s.CompileExt), ".")
	s.RunExt = strings.TrimPrefix(strings.TrimSpace(s.RunExt), ".")
	switch {
	case s.CompileExt == "":
		return errors.New("[scan].compile_ext must not be empty")
	case s.RunExt == "":
		return errors.New("[scan].run_ext must not be empty")
	case s.CompileExt == s.RunExt:
		return fmt.Errorf("[scan].compile_ext and [scan].run_ext are both %q", s.CompileExt)
	case s.MaxDiagnostics < 0:
		return fmt.Errorf("[scan].max_diagnostics must be >= 0, got %d", s.MaxDiagnostics)
	case s.Jobs < 0:
		return fmt.Errorf("[scan].jobs must be >= 0, got %d", s.Jobs)
	}
	return nil
}
