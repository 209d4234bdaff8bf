package domain

import "errors"

// ErrWizardRunning is returned when the cache table is read or replaced while a wizard is running.
var ErrWizardRunning = errors.New("wizard is running")

// ErrTypeMismatch is returned when a lens receives a value of the wrong type.
var ErrTypeMismatch = errors.New("value type does not match property")

// ErrUnknownProperty is returned when a key is not declared by the form.
var ErrUnknownProperty = errors.New("unknown property")
