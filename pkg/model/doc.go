// Package model defines the declarative wizard definition consumed by the
// validator, the wizard state machine and the loaders in pkg/registry.
//
// A Definition lists its steps in order; each Step holds the FieldSpecs shown
// together plus any StepRules that span fields (a radio group that must have a
// selection, a terms checkbox that must be ticked). FieldSpec constraints
// (required, min/max, minLength/maxLength, futureOnly) mirror the declarative
// attributes an embedding page puts on its inputs, so definitions can be
// written by hand in YAML or derived from an OpenAPI request body.
//
// Values are plain strings keyed by field name. Checkboxes store "on" when
// ticked and the empty string otherwise, matching browser form encoding.
package model
