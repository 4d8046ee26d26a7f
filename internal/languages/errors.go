package languages

import "errors"

var (
	// ErrNotInitialized is returned by Register before Init has been called.
	ErrNotInitialized = errors.New("language registry not initialized")

	// ErrDuplicateName is returned when a language with the same name exists.
	// The existing record is left untouched.
	ErrDuplicateName = errors.New("language already registered")

	// ErrEmptyName is returned for records without a name.
	ErrEmptyName = errors.New("language name is empty")
)
