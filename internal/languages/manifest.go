package languages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HookFactory turns an init script reference into an InitFunc for s.
type HookFactory func(s Support, script string) InitFunc

// ManifestEntry is the on-disk form of a user-provided language.
type ManifestEntry struct {
	Name       string   `json:"name" yaml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions"`

	// GenericLexer defaults to true unless a grammar is named.
	GenericLexer *bool  `json:"generic_lexer,omitempty" yaml:"generic_lexer,omitempty"`
	Grammar      string `json:"grammar,omitempty" yaml:"grammar,omitempty"`

	// InitScript is a Lua file run when a buffer of this language is first
	// opened. Relative paths resolve against the manifest's directory.
	InitScript string `json:"init_script,omitempty" yaml:"init_script,omitempty"`
}

// Manifest is a list of user languages, registered after the built-ins.
type Manifest struct {
	Languages []ManifestEntry `json:"languages" yaml:"languages"`

	// dir is where relative init scripts are resolved from.
	dir string
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes a YAML manifest. Relative init scripts resolve
// against the working directory.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// NewManifest wraps inline entries, e.g. from the config file. Relative init
// scripts resolve against dir.
func NewManifest(entries []ManifestEntry, dir string) *Manifest {
	return &Manifest{Languages: entries, dir: dir}
}

// Support converts the entry into a registry record, normalizing extensions.
// hooks may be nil, in which case init scripts are ignored.
func (e ManifestEntry) Support(dir string, hooks HookFactory) (Support, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return Support{}, ErrEmptyName
	}

	s := Support{
		Name:            name,
		Extensions:      NormalizeExtensions(e.Extensions),
		Grammar:         strings.TrimSpace(e.Grammar),
		UseGenericLexer: true,
	}
	if e.GenericLexer != nil {
		s.UseGenericLexer = *e.GenericLexer
	} else if s.Grammar != "" {
		s.UseGenericLexer = false
	}

	if e.InitScript != "" && hooks != nil {
		script := e.InitScript
		if !filepath.IsAbs(script) && dir != "" {
			script = filepath.Join(dir, script)
		}
		s.Init = hooks(s, script)
	}
	return s, nil
}

// Apply registers every entry in file order. Invalid and duplicate entries
// are skipped and reported together; the valid ones are still registered.
func (m *Manifest) Apply(reg *Registry, hooks HookFactory) error {
	var errs []error
	for i, entry := range m.Languages {
		s, err := entry.Support(m.dir, hooks)
		if err != nil {
			errs = append(errs, fmt.Errorf("language #%d: %w", i+1, err))
			continue
		}
		if err := reg.Register(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NormalizeExtensions trims whitespace and a single leading dot, dropping
// empty tokens. Case is preserved since matching is case-sensitive.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		out = append(out, ext)
	}
	return out
}
