package languages

import (
	"context"
	"strings"
)

// InitFunc prepares a buffer of a language the first time the host realizes
// it. The registry only stores the hook; the host decides when to call it.
type InitFunc func(ctx context.Context) error

// Support describes one language the host knows how to open.
type Support struct {
	// Name is the unique, case-sensitive identifier (e.g. "C++").
	Name string `json:"name" yaml:"name"`

	// Extensions are bare file suffixes without the leading dot ("cpp", "h").
	// Order is registration order and does not affect matching.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Init may be nil, meaning the language needs no special initialization.
	Init InitFunc `json:"-" yaml:"-"`

	// UseGenericLexer signals that no dedicated lexer exists and the host
	// should fall back to its shared one.
	UseGenericLexer bool `json:"use_generic_lexer" yaml:"use_generic_lexer"`

	// Grammar optionally names a tree-sitter grammar the host can use when
	// UseGenericLexer is false.
	Grammar string `json:"grammar,omitempty" yaml:"grammar,omitempty"`
}

// HasInit reports whether the record carries an init hook.
func (s Support) HasInit() bool { return s.Init != nil }

// HasExtension reports whether ext is one of the record's extensions.
// Comparison is exact and case-sensitive.
func (s Support) HasExtension(ext string) bool {
	for _, e := range s.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with s.
func (s Support) Clone() Support {
	out := s
	out.Name = strings.Clone(s.Name)
	if s.Extensions != nil {
		out.Extensions = make([]string, len(s.Extensions))
		for i, ext := range s.Extensions {
			out.Extensions[i] = strings.Clone(ext)
		}
	}
	out.Grammar = strings.Clone(s.Grammar)
	return out
}
