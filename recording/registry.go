package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for a name nobody registered.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// registry maps backend names to factories. Backend packages fill the
// default registry from init, so a plain blank import makes a backend
// available to Playback callers by name.
type registry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

var defaultRegistry = &registry{factories: make(map[string]BackendFactory)}

func (r *registry) add(name string, factory BackendFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case name == "":
		panic("recording: Register with empty name")
	case factory == nil:
		panic("recording: Register factory is nil")
	}
	if _, dup := r.factories[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	r.factories[name] = factory
}

func (r *registry) lookup(name string) (BackendFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Register makes a primitive backend available under name. The raster
// package registers "raster" this way. Register panics on an empty name,
// a nil factory or a duplicate name.
func Register(name string, factory BackendFactory) {
	defaultRegistry.add(name, factory)
}

// Unregister removes name. Unknown names are ignored.
func Unregister(name string) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	delete(defaultRegistry.factories, name)
}

// NewBackend returns a fresh backend registered under name. The error
// wraps ErrUnknownBackend when name is not registered, which usually means
// the backend package was never imported.
func NewBackend(name string) (Backend, error) {
	factory, ok := defaultRegistry.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// Backends lists the registered names in sorted order.
func Backends() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	return slices.Sorted(maps.Keys(defaultRegistry.factories))
}

// IsRegistered reports whether name can be passed to NewBackend.
func IsRegistered(name string) bool {
	_, ok := defaultRegistry.lookup(name)
	return ok
}
