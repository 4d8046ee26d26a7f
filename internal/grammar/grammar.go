// Package grammar gives the host access to tree-sitter grammars for
// languages that do not rely on the generic lexer.
package grammar

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
)

var grammars = map[string]func() *sitter.Language{
	"c":          c.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"csharp":     csharp.GetLanguage,
	"go":         golang.GetLanguage,
	"java":       java.GetLanguage,
	"javascript": javascript.GetLanguage,
	"php":        php.GetLanguage,
	"python":     python.GetLanguage,
	"ruby":       ruby.GetLanguage,
}

// Lookup returns the grammar registered under id.
func Lookup(id string) (*sitter.Language, bool) {
	get, ok := grammars[id]
	if !ok {
		return nil, false
	}
	return get(), true
}

// Known lists the available grammar ids, sorted.
func Known() []string {
	ids := make([]string, 0, len(grammars))
	for id := range grammars {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Report summarizes one parse.
type Report struct {
	Grammar   string `json:"grammar" yaml:"grammar"`
	RootType  string `json:"root_type" yaml:"root_type"`
	Nodes     int    `json:"nodes" yaml:"nodes"`
	HasErrors bool   `json:"has_errors" yaml:"has_errors"`
	// FirstError is the 1-based line of the first error or missing node.
	FirstError uint32 `json:"first_error,omitempty" yaml:"first_error,omitempty"`
}

// Probe parses src with the grammar id and reports on the resulting tree.
func Probe(ctx context.Context, id string, src []byte) (Report, error) {
	lang, ok := Lookup(id)
	if !ok {
		return Report{}, fmt.Errorf("unknown grammar: %s", id)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Report{}, fmt.Errorf("failed to parse with %s grammar: %w", id, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	report := Report{
		Grammar:   id,
		RootType:  root.Type(),
		HasErrors: root.HasError(),
	}

	iter := sitter.NewIterator(root, sitter.DFSMode)
	_ = iter.ForEach(func(n *sitter.Node) error {
		report.Nodes++
		if report.FirstError == 0 && (n.IsError() || n.IsMissing()) {
			report.FirstError = n.StartPoint().Row + 1
		}
		return nil
	})

	return report, nil
}
