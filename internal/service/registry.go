package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/guttosm/fixdict/internal/dict"
)

// ErrSourceConflict is returned when a version is registered from a file other
// than the one it was first loaded from.
var ErrSourceConflict = errors.New("version declared by two files")

// Registry holds the dictionaries loaded in this process, one per protocol
// version, and the spec file each one came from. Dictionaries are immutable,
// so the lock only guards the maps.
type Registry struct {
	mu      sync.RWMutex
	dicts   map[string]*dict.Dictionary
	sources map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		dicts:   make(map[string]*dict.Dictionary),
		sources: make(map[string]string),
	}
}

// Register stores d under its version, replacing any previous dictionary for
// that version and forgetting its source. It reports whether a dictionary was
// replaced.
func (r *Registry) Register(d *dict.Dictionary) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced := r.dicts[d.Version()]
	r.dicts[d.Version()] = d
	delete(r.sources, d.Version())
	return replaced
}

// RegisterSource stores d as loaded from the file source. Reloading a version
// from the file that owns it replaces the dictionary; a different file is
// rejected with ErrSourceConflict and the registry is left unchanged.
func (r *Registry) RegisterSource(d *dict.Dictionary, source string) (bool, error) {
	source = filepath.Clean(source)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkSource(d.Version(), source); err != nil {
		return false, err
	}
	_, replaced := r.dicts[d.Version()]
	r.dicts[d.Version()] = d
	r.sources[d.Version()] = source
	return replaced, nil
}

// CheckSource reports whether source may register version.
func (r *Registry) CheckSource(version, source string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checkSource(version, filepath.Clean(source))
}

func (r *Registry) checkSource(version, source string) error {
	if prev, ok := r.sources[version]; ok && prev != source {
		return fmt.Errorf("%w: %s declared by both %s and %s",
			ErrSourceConflict, version, filepath.Base(prev), filepath.Base(source))
	}
	return nil
}

// Source returns the file version was registered from.
func (r *Registry) Source(version string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[version]
	return s, ok
}

func (r *Registry) Get(version string) (*dict.Dictionary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dicts[version]
	return d, ok
}

// Versions returns the registered versions in lexical order.
func (r *Registry) Versions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.dicts))
	for v := range r.dicts {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Remove(version string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.dicts[version]
	delete(r.dicts, version)
	delete(r.sources, version)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.dicts)
}
