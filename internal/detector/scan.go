package detector

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/logger"
	"golang.org/x/sync/errgroup"
)

// ScanOptions controls a directory scan.
type ScanOptions struct {
	// ExcludePaths are directory names skipped wherever they appear.
	ExcludePaths []string
	// MaxDepth limits directory nesting below the root; 0 means unlimited.
	MaxDepth int
	// Workers bounds concurrent resolution; values below 1 mean 4.
	Workers int
	Logger  logger.Logger
}

// ScanResult aggregates language counts for a tree.
type ScanResult struct {
	Root  string `json:"root" yaml:"root"`
	Files int    `json:"files" yaml:"files"`

	// ByLanguage counts resolved files per language name.
	ByLanguage map[string]int `json:"by_language" yaml:"by_language"`
	// ByDirectory counts resolved files per relative directory ("root" for
	// the top level) and language.
	ByDirectory map[string]map[string]int `json:"by_directory" yaml:"by_directory"`
	// Unmatched counts files no language claimed, keyed by extension
	// ("" for files without one).
	Unmatched map[string]int `json:"unmatched" yaml:"unmatched"`
}

// Scan walks root and resolves every regular file against reg.
func Scan(ctx context.Context, reg *languages.Registry, root string, opts ScanOptions) (*ScanResult, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 4
	}

	paths, err := collectFiles(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Root:        root,
		ByLanguage:  make(map[string]int),
		ByDirectory: make(map[string]map[string]int),
		Unmatched:   make(map[string]int),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, ok := Resolve(reg, path)

			mu.Lock()
			defer mu.Unlock()
			result.Files++
			if !ok {
				result.Unmatched[Extension(path)]++
				return nil
			}
			log.Logf("%s -> %s (%s)", path, res.Language.Name, res.Method)
			result.ByLanguage[res.Language.Name]++
			dir := directoryKey(root, path)
			if result.ByDirectory[dir] == nil {
				result.ByDirectory[dir] = make(map[string]int)
			}
			result.ByDirectory[dir][res.Language.Name]++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// PrimaryLanguages returns the most common language of each scanned
// directory. Ties go to the alphabetically first name.
func (r *ScanResult) PrimaryLanguages() map[string]string {
	out := make(map[string]string, len(r.ByDirectory))
	for dir, counts := range r.ByDirectory {
		if lang := findMostCommonLanguage(counts); lang != "" {
			out[dir] = lang
		}
	}
	return out
}

// Languages returns the resolved language names ordered by file count,
// highest first.
func (r *ScanResult) Languages() []string {
	names := make([]string, 0, len(r.ByLanguage))
	for name := range r.ByLanguage {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := r.ByLanguage[names[i]], r.ByLanguage[names[j]]
		if ci == cj {
			return names[i] < names[j]
		}
		return ci > cj
	})
	return names
}

func findMostCommonLanguage(langCounts map[string]int) string {
	primaryLang := ""
	maxCount := 0
	for lang, count := range langCounts {
		if count > maxCount || (count == maxCount && lang < primaryLang) {
			maxCount = count
			primaryLang = lang
		}
	}
	return primaryLang
}

func collectFiles(ctx context.Context, root string, opts ScanOptions) ([]string, error) {
	skip := make(map[string]struct{}, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		skip[p] = struct{}{}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if de.IsDir() {
			if path == root {
				return nil
			}
			if _, ok := skip[de.Name()]; ok {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depth(root, path) > opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		// Hidden files and anything that is not a regular file are ignored.
		if strings.HasPrefix(de.Name(), ".") || !de.Type().IsRegular() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

func directoryKey(root, path string) string {
	rel, _ := filepath.Rel(root, filepath.Dir(path))
	if rel == "." || rel == "" {
		return "root"
	}
	return filepath.ToSlash(rel)
}
