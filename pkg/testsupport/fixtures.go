// Package testsupport holds fixtures shared by tests that sit above the
// registry and persistence layers.
package testsupport

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/persistence"
	"github.com/goliatone/go-formwizard/pkg/registry"
)

// MustBuiltin resolves a bundled definition by section or id.
func MustBuiltin(t *testing.T, name string) model.Definition {
	t.Helper()

	reg, err := registry.Builtin()
	if err != nil {
		t.Fatalf("load builtin definitions: %v", err)
	}
	def, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("builtin definition %q not found", name)
	}
	return def
}

// MustLoadDefinition parses a JSON or YAML definition fixture.
func MustLoadDefinition(t *testing.T, path string) model.Definition {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read definition: %v", err)
	}
	def, err := registry.Parse(data, path)
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	return def
}

// SeedBlob stores a saved session for key as if it had been written at
// savedAt.
func SeedBlob(t *testing.T, store persistence.Store, key string, values model.Values, step int, savedAt time.Time) {
	t.Helper()

	blob := persistence.NewBlob(values, step, savedAt)
	if err := persistence.Save(Context(), store, key, blob); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
}

// RequireNoBlob fails unless key is absent from store.
func RequireNoBlob(t *testing.T, store persistence.Store, key string) {
	t.Helper()

	_, err := store.Get(Context(), key)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected %q to be absent, got err=%v", key, err)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
