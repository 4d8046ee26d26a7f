// Package host plays the editor's part: it opens files, picks their language
// from the registry and realizes buffers.
package host

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/getlawrence/langreg/internal/detector"
	"github.com/getlawrence/langreg/internal/grammar"
	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/logger"
)

// Lexer names the tokenizer a buffer ends up with.
type Lexer string

const (
	LexerGeneric Lexer = "generic"
	LexerGrammar Lexer = "grammar"
)

// Buffer is a realized file.
type Buffer struct {
	Path     string            `json:"path" yaml:"path"`
	Language languages.Support `json:"language" yaml:"language"`
	Method   detector.Method   `json:"method" yaml:"method"`
	Lexer    Lexer             `json:"lexer" yaml:"lexer"`
	// Initialized is true when this open ran the language's init hook.
	Initialized bool            `json:"initialized" yaml:"initialized"`
	Grammar     *grammar.Report `json:"grammar,omitempty" yaml:"grammar,omitempty"`
}

// Session tracks which languages have been realized so init hooks fire once
// per language, the first time a buffer of that language is opened.
type Session struct {
	reg    *languages.Registry
	logger logger.Logger

	mu       sync.Mutex
	realized map[string]bool
}

// NewSession starts a session over reg with no languages realized yet.
func NewSession(reg *languages.Registry, l logger.Logger) *Session {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &Session{reg: reg, logger: l, realized: make(map[string]bool)}
}

// ErrNoLanguage is returned by Open when nothing claims the file.
type ErrNoLanguage struct{ Path string }

func (e *ErrNoLanguage) Error() string {
	return fmt.Sprintf("no registered language for %s", e.Path)
}

// Open resolves path, runs the language's init hook on first use and
// selects a lexer. A grammar lexer is only chosen when the record opts out of
// the generic lexer and names a grammar the host knows.
func (s *Session) Open(ctx context.Context, path string) (*Buffer, error) {
	res, ok := detector.Resolve(s.reg, path)
	if !ok {
		return nil, &ErrNoLanguage{Path: path}
	}
	lang := res.Language

	buf := &Buffer{
		Path:     path,
		Language: lang,
		Method:   res.Method,
		Lexer:    LexerGeneric,
	}

	ran, err := s.realize(ctx, lang)
	if err != nil {
		return nil, err
	}
	buf.Initialized = ran

	if lang.UseGenericLexer || lang.Grammar == "" {
		return buf, nil
	}
	if _, known := grammar.Lookup(lang.Grammar); !known {
		s.logger.Logf("%s: unknown grammar %q, using the generic lexer", lang.Name, lang.Grammar)
		return buf, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	report, err := grammar.Probe(ctx, lang.Grammar, src)
	if err != nil {
		return nil, err
	}
	buf.Lexer = LexerGrammar
	buf.Grammar = &report
	return buf, nil
}

// Realized reports whether the named language has been realized.
func (s *Session) Realized(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.realized[name]
}

// realize runs the init hook the first time lang is seen. A failed hook
// leaves the language unrealized so the next open retries it.
func (s *Session) realize(ctx context.Context, lang languages.Support) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.realized[lang.Name] {
		return false, nil
	}
	if lang.Init != nil {
		s.logger.Logf("initializing %s", lang.Name)
		if err := lang.Init(ctx); err != nil {
			return false, fmt.Errorf("failed to initialize %s: %w", lang.Name, err)
		}
	}
	s.realized[lang.Name] = true
	return lang.Init != nil, nil
}
