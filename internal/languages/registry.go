package languages

import (
	"fmt"
	"sync"

	"github.com/getlawrence/langreg/internal/logger"
)

// Registry is the catalog of languages known to a host. It is created
// uninitialized; Init must run before Register has any effect.
//
// Records are kept in registration order, which is also the priority order
// for extension lookups.
type Registry struct {
	mu      sync.RWMutex
	records []Support // nil until Init
	logger  logger.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger reports skipped registrations to l.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an uninitialized registry; call Init before Register.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: logger.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init establishes storage. Calling it again never clears existing records.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.records == nil {
		r.records = make([]Support, 0, 8)
	}
}

// Initialized reports whether Init has been called.
func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records != nil
}

// Register stores a private copy of s. Nothing is stored when the registry is
// not initialized, when the name is empty or when the name is already taken;
// the returned error tells those cases apart and can be ignored by callers
// that only care about the effect.
func (r *Registry) Register(s Support) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.records == nil {
		r.logger.Logf("skipping language %q: registry not initialized", s.Name)
		return fmt.Errorf("register %q: %w", s.Name, ErrNotInitialized)
	}
	if s.Name == "" {
		r.logger.Log("skipping language with empty name")
		return ErrEmptyName
	}
	for i := range r.records {
		if r.records[i].Name == s.Name {
			r.logger.Logf("skipping language %q: already registered", s.Name)
			return fmt.Errorf("register %q: %w", s.Name, ErrDuplicateName)
		}
	}

	r.records = append(r.records, s.Clone())
	return nil
}

// FindByExtension returns the first record, in registration order, whose
// extensions contain ext exactly.
func (r *Registry) FindByExtension(ext string) (Support, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].HasExtension(ext) {
			return r.records[i].Clone(), true
		}
	}
	return Support{}, false
}

// FindByName returns the record registered under name.
func (r *Registry) FindByName(name string) (Support, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].Name == name {
			return r.records[i].Clone(), true
		}
	}
	return Support{}, false
}

// All returns every record in registration order.
func (r *Registry) All() []Support {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Support, len(r.records))
	for i := range r.records {
		out[i] = r.records[i].Clone()
	}
	return out
}

// Count returns the number of registered languages.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Overlaps lists every extension claimed by more than one language, mapped to
// the claiming names in lookup priority order. Only the first name is ever
// returned by FindByExtension.
func (r *Registry) Overlaps() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	claims := make(map[string][]string)
	for _, rec := range r.records {
		seen := make(map[string]bool, len(rec.Extensions))
		for _, ext := range rec.Extensions {
			if seen[ext] {
				continue
			}
			seen[ext] = true
			claims[ext] = append(claims[ext], rec.Name)
		}
	}

	out := make(map[string][]string)
	for ext, names := range claims {
		if len(names) > 1 {
			out[ext] = names
		}
	}
	return out
}
