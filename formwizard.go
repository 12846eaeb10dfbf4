// Package formwizard drives multi-step site forms. It validates fields as
// they are typed, gates step navigation on validation, auto-saves progress
// for 24 hours, derives price summaries and hands completed forms to a
// submitter that assigns a reference number.
//
// Quick start:
//
//	w, restored, err := formwizard.Start(ctx, nil, "consulting",
//	  wizard.WithStore(persistence.NewMemoryStore()),
//	  wizard.WithSink(sink),
//	)
package formwizard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/pricing"
	"github.com/goliatone/go-formwizard/pkg/registry"
	"github.com/goliatone/go-formwizard/pkg/summary"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrUnknownForm is returned when a name matches no section or definition.
var ErrUnknownForm = errors.New("formwizard: unknown form")

// Definition aliases model.Definition for callers using the root package.
type Definition = model.Definition

// Values aliases model.Values.
type Values = model.Values

// Wizard aliases wizard.Wizard.
type Wizard = wizard.Wizard

// Submission aliases wizard.Submission.
type Submission = wizard.Submission

// Option aliases wizard.Option so wizard options can be passed through Start.
type Option = wizard.Option

// Builtin returns a registry holding the bundled definitions.
func Builtin() (*registry.Registry, error) {
	return registry.Builtin()
}

// LoadDefinitions reads every JSON/YAML definition under fsys.
func LoadDefinitions(fsys fs.FS) (*registry.Registry, error) {
	return registry.LoadFS(fsys)
}

// DefinitionFromOpenAPI derives a definition from the request body of an
// OpenAPI operation.
func DefinitionFromOpenAPI(ctx context.Context, data []byte, operationID string) (Definition, error) {
	return registry.FromOpenAPI(ctx, data, operationID)
}

// Resolve looks name up as a section or definition id. A nil registry uses
// the bundled definitions.
func Resolve(reg *registry.Registry, name string) (Definition, error) {
	if reg == nil {
		var err error
		if reg, err = registry.Builtin(); err != nil {
			return Definition{}, err
		}
	}
	def, ok := reg.Lookup(name)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return def, nil
}

// Start resolves name, builds a wizard and resumes any saved session. The
// boolean reports whether a session was restored.
func Start(ctx context.Context, reg *registry.Registry, name string, options ...Option) (*Wizard, bool, error) {
	def, err := Resolve(reg, name)
	if err != nil {
		return nil, false, err
	}
	w, err := wizard.New(def, options...)
	if err != nil {
		return nil, false, err
	}
	restored, err := w.Restore(ctx)
	if err != nil {
		w.Close()
		return nil, false, err
	}
	return w, restored, nil
}

// Quote prices values against def and builds the matching summary without
// running a wizard.
func Quote(def Definition, values Values) summary.Document {
	price := pricing.NewCalculator(def.Pricing).Calculate(values)
	return summary.Build(def, values, price)
}
