package languages

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/getlawrence/langreg/internal/logger"
)

func cppRecord() Support {
	return Support{Name: "C++", Extensions: []string{"cpp", "h", "c", "hpp", "cc"}, UseGenericLexer: true}
}

func pythonRecord() Support {
	return Support{Name: "Python", Extensions: []string{"py"}, UseGenericLexer: true}
}

func newInitialized(t *testing.T, records ...Support) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.Init()
	for _, s := range records {
		if err := reg.Register(s); err != nil {
			t.Fatalf("Register(%q) error: %v", s.Name, err)
		}
	}
	return reg
}

func names(records []Support) []string {
	out := make([]string, len(records))
	for i, s := range records {
		out[i] = s.Name
	}
	return out
}

func TestInit_Idempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Init()
	if reg.Count() != 0 {
		t.Fatalf("expected empty registry after first Init, got %d", reg.Count())
	}
	reg.Init()
	if reg.Count() != 0 {
		t.Fatalf("expected empty registry after second Init, got %d", reg.Count())
	}

	if err := reg.Register(cppRecord()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	reg.Init()
	if reg.Count() != 1 {
		t.Fatalf("Init must not clear records, count=%d", reg.Count())
	}
	if _, ok := reg.FindByExtension("cpp"); !ok {
		t.Fatalf("record lost after re-Init")
	}
}

func TestRegister_PreservesOrder(t *testing.T) {
	reg := newInitialized(t,
		Support{Name: "R1", Extensions: []string{"a"}},
		Support{Name: "R2", Extensions: []string{"b"}},
		Support{Name: "R3"},
	)

	got := strings.Join(names(reg.All()), ",")
	if got != "R1,R2,R3" {
		t.Fatalf("expected R1,R2,R3, got %s", got)
	}
	if reg.Count() != 3 {
		t.Fatalf("expected count 3, got %d", reg.Count())
	}
}

func TestRegister_DuplicateNameKeepsFirst(t *testing.T) {
	reg := newInitialized(t, cppRecord())

	err := reg.Register(Support{Name: "C++", Extensions: []string{"cxx"}})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if reg.Count() != 1 {
		t.Fatalf("expected count 1, got %d", reg.Count())
	}
	if _, ok := reg.FindByExtension("cxx"); ok {
		t.Fatalf("second registration must not add extensions")
	}
	if s, ok := reg.FindByExtension("hpp"); !ok || s.Name != "C++" {
		t.Fatalf("first registration's extensions should still resolve")
	}
}

func TestRegister_NameIsCaseSensitive(t *testing.T) {
	reg := newInitialized(t, pythonRecord())
	if err := reg.Register(Support{Name: "python", Extensions: []string{"pyw"}}); err != nil {
		t.Fatalf("differently cased name should register, got %v", err)
	}
	if reg.Count() != 2 {
		t.Fatalf("expected count 2, got %d", reg.Count())
	}
}

func TestRegister_EmptyName(t *testing.T) {
	reg := newInitialized(t)
	if err := reg.Register(Support{Extensions: []string{"x"}}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if reg.Count() != 0 {
		t.Fatalf("expected nothing registered")
	}
}

func TestFindByExtension(t *testing.T) {
	reg := newInitialized(t, cppRecord(), pythonRecord())

	tests := []struct {
		ext      string
		wantName string
		wantOK   bool
	}{
		{"py", "Python", true},
		{"h", "C++", true},
		{"cc", "C++", true},
		{"rs", "", false},
		{"PY", "", false},
		{".py", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		s, ok := reg.FindByExtension(tt.ext)
		if ok != tt.wantOK {
			t.Errorf("FindByExtension(%q) ok=%v, want %v", tt.ext, ok, tt.wantOK)
			continue
		}
		if s.Name != tt.wantName {
			t.Errorf("FindByExtension(%q) = %q, want %q", tt.ext, s.Name, tt.wantName)
		}
	}
}

func TestFindByExtension_FirstRegisteredWins(t *testing.T) {
	reg := newInitialized(t, cppRecord(), Support{Name: "Objective-C", Extensions: []string{"m", "h"}})

	s, ok := reg.FindByExtension("h")
	if !ok || s.Name != "C++" {
		t.Fatalf("expected C++ to win the shared extension, got %q", s.Name)
	}
	if s, _ := reg.FindByExtension("m"); s.Name != "Objective-C" {
		t.Fatalf("expected Objective-C for m, got %q", s.Name)
	}

	overlaps := reg.Overlaps()
	if len(overlaps) != 1 {
		t.Fatalf("expected one overlapping extension, got %v", overlaps)
	}
	if got := strings.Join(overlaps["h"], ","); got != "C++,Objective-C" {
		t.Fatalf("unexpected overlap order %s", got)
	}
}

func TestRegister_DeepCopiesCallerData(t *testing.T) {
	exts := []string{string([]byte("cpp")), string([]byte("h"))}
	rec := Support{Name: "C++", Extensions: exts}

	reg := newInitialized(t, rec)

	exts[0] = "rs"
	exts[1] = "go"
	rec.Extensions = append(rec.Extensions[:0], "zig")

	if _, ok := reg.FindByExtension("cpp"); !ok {
		t.Fatalf("registry copy changed after caller mutated its slice")
	}
	if _, ok := reg.FindByExtension("rs"); ok {
		t.Fatalf("caller mutation leaked into the registry")
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	reg := newInitialized(t, cppRecord())

	s, _ := reg.FindByExtension("cpp")
	s.Extensions[0] = "mutated"

	all := reg.All()
	all[0].Extensions[1] = "mutated"
	all[0].Name = "mutated"

	again, ok := reg.FindByName("C++")
	if !ok {
		t.Fatalf("FindByName lost the record")
	}
	if again.Extensions[0] != "cpp" || again.Extensions[1] != "h" {
		t.Fatalf("registry storage aliased by returned values: %v", again.Extensions)
	}
}

func TestUninitializedRegistry(t *testing.T) {
	rec := &logger.Recorder{}
	reg := NewRegistry(WithLogger(rec))

	if reg.Initialized() {
		t.Fatalf("new registry should not be initialized")
	}
	if reg.Count() != 0 {
		t.Fatalf("expected count 0")
	}
	if len(reg.All()) != 0 {
		t.Fatalf("expected empty enumeration")
	}
	if _, ok := reg.FindByExtension("cpp"); ok {
		t.Fatalf("expected not found")
	}

	err := reg.Register(cppRecord())
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if len(rec.Lines()) != 1 {
		t.Fatalf("expected the skip to be logged, got %v", rec.Lines())
	}

	reg.Init()
	if reg.Count() != 0 {
		t.Fatalf("registration before Init must not be queued, count=%d", reg.Count())
	}
	if _, ok := reg.FindByExtension("cpp"); ok {
		t.Fatalf("registration before Init must not be queued")
	}
}

func TestEmptyExtensionsStillEnumerated(t *testing.T) {
	reg := newInitialized(t, Support{Name: "Plain"})
	if reg.Count() != 1 || reg.All()[0].Name != "Plain" {
		t.Fatalf("language without extensions should be enumerated")
	}
	if _, ok := reg.FindByExtension(""); ok {
		t.Fatalf("language without extensions must never match")
	}
}

func TestConcurrentReaders(t *testing.T) {
	reg := newInitialized(t, cppRecord(), pythonRecord())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := reg.FindByExtension("py"); !ok {
					t.Errorf("lookup failed")
					return
				}
				_ = reg.All()
			}
		}()
	}
	wg.Wait()
}
