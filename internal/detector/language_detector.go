package detector

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/getlawrence/langreg/internal/languages"
	"github.com/go-enry/go-enry/v2"
)

// contentSniffLimit bounds how much of a file is read for content detection.
const contentSniffLimit = 16 * 1024

// Method records how a file was matched to a language.
type Method string

const (
	// MethodExtension is a direct registry hit on the file extension.
	MethodExtension Method = "extension"
	// MethodEnryExtension means enry named the language from the file name
	// and the registry knew that name.
	MethodEnryExtension Method = "enry-extension"
	// MethodEnryContent means enry named the language from the file content.
	MethodEnryContent Method = "enry-content"
)

// Resolution is the outcome of matching one file.
type Resolution struct {
	Path     string            `json:"path" yaml:"path"`
	Language languages.Support `json:"language" yaml:"language"`
	Method   Method            `json:"method" yaml:"method"`
}

// Extension returns the lookup key for path: the suffix after the last dot,
// without the dot, case preserved. Dotfiles with no other dot have none.
func Extension(path string) string {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && strings.Count(base, ".") == 1 {
		return ""
	}
	return strings.TrimPrefix(filepath.Ext(base), ".")
}

// Resolve finds the registered language for path. The registry's own
// extension lookup always runs first so registration order decides overlaps;
// enry is only consulted when the registry has no record for the extension.
// Registry matching is case-sensitive, so a file whose extension differs only
// by case from a registered one is left unmatched rather than handed to enry.
func Resolve(reg *languages.Registry, path string) (Resolution, bool) {
	ext := Extension(path)
	if ext != "" {
		if s, ok := reg.FindByExtension(ext); ok {
			return Resolution{Path: path, Language: s, Method: MethodExtension}, true
		}
		if hasCaseVariant(reg, ext) {
			return Resolution{}, false
		}
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		if s, ok := findEnryLanguage(reg, lang); ok {
			return Resolution{Path: path, Language: s, Method: MethodEnryExtension}, true
		}
	}

	content, err := readHead(path)
	if err != nil || len(content) == 0 {
		return Resolution{}, false
	}
	lang := enry.GetLanguage(filepath.Base(path), content)
	if lang == "" {
		return Resolution{}, false
	}
	if s, ok := findEnryLanguage(reg, lang); ok {
		return Resolution{Path: path, Language: s, Method: MethodEnryContent}, true
	}
	return Resolution{}, false
}

// findEnryLanguage prefers a record registered under enry's exact name and
// only then falls back to the built-in spelling.
func findEnryLanguage(reg *languages.Registry, lang string) (languages.Support, bool) {
	if s, ok := reg.FindByName(lang); ok {
		return s, true
	}
	if alias := normalizeLanguageName(lang); alias != lang {
		return reg.FindByName(alias)
	}
	return languages.Support{}, false
}

// hasCaseVariant reports whether some record claims ext under another case.
func hasCaseVariant(reg *languages.Registry, ext string) bool {
	for _, s := range reg.All() {
		for _, e := range s.Extensions {
			if e != ext && strings.EqualFold(e, ext) {
				return true
			}
		}
	}
	return false
}

// normalizeLanguageName maps enry names onto the names the built-ins use.
func normalizeLanguageName(lang string) string {
	switch lang {
	case "C", "C++", "Objective-C", "Objective-C++":
		return "C++"
	case "Go Module":
		return "Go"
	default:
		return lang
	}
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, contentSniffLimit))
}
