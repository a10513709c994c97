package cache

import "errors"

// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
var ErrNoLoader = errors.New("cache: no Loader provided")

// PolicyError reports that the eviction policy malfunctioned while Set was
// trying to free space. The failed attempt leaves the entry map unmodified:
// the victim lookup runs before anything is removed or inserted.
type PolicyError struct {
	Err error
}

func (e *PolicyError) Error() string { return "cache: eviction policy failed: " + e.Err.Error() }

func (e *PolicyError) Unwrap() error { return e.Err }
