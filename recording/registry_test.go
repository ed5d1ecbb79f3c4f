package recording

import (
	"errors"
	"strings"
	"testing"
)

// resetRegistry clears all registered backends for test isolation.
func resetRegistry() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.factories = make(map[string]BackendFactory)
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("mock", func() Backend { return &mockBackend{} })
	if !IsRegistered("mock") {
		t.Fatal("mock not registered")
	}
	b, err := NewBackend("mock")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*mockBackend); !ok {
		t.Errorf("NewBackend returned %T", b)
	}

	Unregister("mock")
	if IsRegistered("mock") {
		t.Error("mock still registered after Unregister")
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	_, err := NewBackend("nope")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
	if err == nil || !strings.Contains(err.Error(), "forgotten import") {
		t.Errorf("err = %v, want import hint", err)
	}
}

func TestBackendsSorted(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		Register(name, func() Backend { return &mockBackend{} })
	}
	got := strings.Join(Backends(), ",")
	if got != "alpha,mid,zeta" {
		t.Errorf("Backends() = %s", got)
	}
}

func TestRegisterPanics(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: no panic", name)
			}
		}()
		f()
	}
	mustPanic("nil factory", func() { Register("x", nil) })
	mustPanic("empty name", func() { Register("", func() Backend { return &mockBackend{} }) })
	Register("dup", func() Backend { return &mockBackend{} })
	mustPanic("duplicate", func() { Register("dup", func() Backend { return &mockBackend{} }) })
}
