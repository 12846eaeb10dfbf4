package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

//go:embed definitions/*
var embeddedDefinitions embed.FS

// EmbeddedFS returns the bundled site definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Registry indexes definitions by id and by site section.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]model.Definition
	sections map[string]string
	sources  map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byID:     make(map[string]model.Definition),
		sections: make(map[string]string),
		sources:  make(map[string]string),
	}
}

// Builtin loads the bundled definitions.
func Builtin() (*Registry, error) {
	return LoadFS(EmbeddedFS())
}

// LoadFS walks fsys and registers every JSON/YAML definition file. A nil
// filesystem yields an empty registry.
func LoadFS(fsys fs.FS) (*Registry, error) {
	reg := New()
	if fsys == nil {
		return reg, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("registry: read %s: %w", path, err)
		}
		def, err := Parse(data, path)
		if err != nil {
			return err
		}
		return reg.add(def, path)
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Parse decodes one definition from JSON or YAML and validates it. source
// only appears in error messages.
func Parse(data []byte, source string) (model.Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Definition{}, fmt.Errorf("registry: file %s is empty", source)
	}

	var def model.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = model.Definition{}
		if yamlErr := yaml.Unmarshal(data, &def); yamlErr != nil {
			return model.Definition{}, fmt.Errorf("registry: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	def = normalise(def)
	if err := def.Validate(); err != nil {
		return model.Definition{}, fmt.Errorf("registry: %s: %w", source, err)
	}
	return def, nil
}

func normalise(def model.Definition) model.Definition {
	def.ID = strings.TrimSpace(def.ID)
	def.Section = strings.TrimSpace(def.Section)
	for si := range def.Steps {
		for fi := range def.Steps[si].Fields {
			field := &def.Steps[si].Fields[fi]
			field.Name = strings.TrimSpace(field.Name)
			field.Kind = model.FieldKind(strings.ToLower(strings.TrimSpace(string(field.Kind))))
		}
	}
	return def
}

// Add registers def after validating it.
func (r *Registry) Add(def model.Definition) error {
	def = normalise(def)
	if err := def.Validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	return r.add(def, "")
}

func (r *Registry) add(def model.Definition, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[def.ID]; exists {
		return fmt.Errorf("registry: duplicate definition %q (file %s)", def.ID, source)
	}
	if def.Section != "" {
		if other, exists := r.sections[def.Section]; exists {
			return fmt.Errorf("registry: section %q already served by %q (file %s)", def.Section, other, source)
		}
		r.sections[def.Section] = def.ID
	}
	r.byID[def.ID] = def
	r.sources[def.ID] = source
	return nil
}

// Definition returns the definition registered under id.
func (r *Registry) Definition(id string) (model.Definition, bool) {
	if r == nil {
		return model.Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byID[id]
	return def, ok
}

// Lookup resolves name as a section first and as a definition id second.
func (r *Registry) Lookup(name string) (model.Definition, bool) {
	if r == nil {
		return model.Definition{}, false
	}
	name = strings.TrimSpace(name)
	r.mu.RLock()
	id, ok := r.sections[name]
	r.mu.RUnlock()
	if ok {
		return r.Definition(id)
	}
	return r.Definition(name)
}

// Source reports the file a definition was loaded from.
func (r *Registry) Source(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[id]
}

// Sections lists the registered section names in order.
func (r *Registry) Sections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sections))
	for name := range r.sections {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IDs lists the registered definition ids in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the registry holds any definition.
func (r *Registry) Empty() bool {
	if r == nil {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
