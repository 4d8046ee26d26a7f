package languages

import (
	"errors"
	"fmt"
)

// RegisterDefaults initializes reg and seeds it with the built-in languages.
// Built-ins register first, so they keep priority over any later
// registration that claims the same extension. Running it on a registry that
// already holds the built-ins is harmless.
//
// To add a built-in, write one constructor below and append it here.
func RegisterDefaults(reg *Registry) error {
	reg.Init()

	for _, s := range []Support{
		cppSupport(),
		pythonSupport(),
	} {
		if err := reg.Register(s); err != nil && !errors.Is(err, ErrDuplicateName) {
			return fmt.Errorf("failed to register built-in languages: %w", err)
		}
	}
	return nil
}

// BuiltinNames lists the built-in languages in registration order.
func BuiltinNames() []string {
	return []string{cppSupport().Name, pythonSupport().Name}
}

func cppSupport() Support {
	return Support{
		Name:            "C++",
		Extensions:      []string{"cpp", "h", "c", "hpp", "cc"},
		UseGenericLexer: true,
	}
}

func pythonSupport() Support {
	return Support{
		Name:            "Python",
		Extensions:      []string{"py"},
		UseGenericLexer: true,
	}
}
