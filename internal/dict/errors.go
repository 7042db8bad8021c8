package dict

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy for dictionary construction. Every import failure wraps
// exactly one of these sentinels so callers can branch with errors.Is.
var (
	// ErrMalformedInput is returned when the source document is not well formed
	// or misses a mandatory section.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnresolvedReference is returned when a layout item names an entity
	// that is not registered at resolution time.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrCyclicDefinition is returned when component definitions reference
	// each other in a cycle.
	ErrCyclicDefinition = errors.New("cyclic definition")
	// ErrDuplicateKey is returned when a tag, name or msg type is registered twice.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrLookup is returned when a field names a datatype that was never collected.
	ErrLookup = errors.New("lookup failed")
)

// ReferenceError reports a layout item whose target does not exist.
type ReferenceError struct {
	Kind    string // "field", "component" or "group"
	Name    string
	Context string // owner of the layout, e.g. "component Instrument"
}

func (e *ReferenceError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s %q", ErrUnresolvedReference, e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s %q in %s", ErrUnresolvedReference, e.Kind, e.Name, e.Context)
}

func (e *ReferenceError) Unwrap() error { return ErrUnresolvedReference }

// CycleError reports a component dependency cycle. Path starts and ends with
// the same component name.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicDefinition, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDefinition }

// DuplicateKeyError reports a key registered twice in the same collection.
type DuplicateKeyError struct {
	Kind string // "field tag", "field name", "component", ...
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrDuplicateKey, e.Kind, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }
