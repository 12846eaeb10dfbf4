package model

import "strings"

// FieldKind is the simplified enum for the input kinds a wizard step can hold.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindTextArea FieldKind = "textarea"
	FieldKindEmail    FieldKind = "email"
	FieldKindTel      FieldKind = "tel"
	FieldKindNumber   FieldKind = "number"
	FieldKindDate     FieldKind = "date"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindSelect   FieldKind = "select"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindTextArea, FieldKindEmail, FieldKindTel,
		FieldKindNumber, FieldKindDate, FieldKindRadio, FieldKindCheckbox,
		FieldKindSelect:
		return true
	default:
		return false
	}
}

// Choice reports whether the kind picks from a fixed set of options.
func (k FieldKind) Choice() bool {
	return k == FieldKindRadio || k == FieldKindSelect || k == FieldKindCheckbox
}

// CheckedValue is the value browsers submit for a ticked checkbox.
const CheckedValue = "on"

// PhonePolicy selects the phone pattern a deployment accepts.
type PhonePolicy string

const (
	// PhoneLocal accepts 10 digit local numbers (05/06/07 prefixes).
	PhoneLocal PhonePolicy = "local"
	// PhoneInternational additionally accepts the +213 prefix.
	PhoneInternational PhonePolicy = "international"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// FieldSpec declares one input and its validation constraints. Specs are
// read-only to the wizard.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Min         *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength   *int      `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	FutureOnly  bool      `json:"futureOnly,omitempty" yaml:"futureOnly,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
}

// DisplayLabel returns the label or a label derived from the name.
func (f FieldSpec) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// OptionLabel resolves the display label of value, falling back to value
// itself when no option matches.
func (f FieldSpec) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return value
}

// RuleKind names a cross-field step rule.
type RuleKind string

const (
	// RuleRequireSelection demands a non-empty value for a choice field.
	RuleRequireSelection RuleKind = "require_selection"
	// RuleRequireChecked demands a ticked checkbox.
	RuleRequireChecked RuleKind = "require_checked"
)

// StepRule is a step-level rule evaluated in addition to field validation.
type StepRule struct {
	Kind    RuleKind `json:"kind" yaml:"kind"`
	Field   string   `json:"field" yaml:"field"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Step groups the fields shown together on one wizard page.
type Step struct {
	Title  string      `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
	Rules  []StepRule  `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// PricingStrategy selects the derivation used for the booking summary.
type PricingStrategy string

const (
	PricingNone     PricingStrategy = "none"
	PricingGroup    PricingStrategy = "group"
	PricingDuration PricingStrategy = "duration"
)

// Pricing wires field names to the price table of a definition.
type Pricing struct {
	Strategy PricingStrategy `json:"strategy" yaml:"strategy"`
	// CategoryField holds the destination, category or consultant.
	CategoryField string `json:"categoryField,omitempty" yaml:"categoryField,omitempty"`
	// TierField holds the duration or tier token.
	TierField string `json:"tierField,omitempty" yaml:"tierField,omitempty"`
	// QuantityField holds the group size token (group strategy only).
	QuantityField string `json:"quantityField,omitempty" yaml:"quantityField,omitempty"`
	// Table maps category -> tier -> base price. The "*" tier matches any
	// tier, which is how flat consultant rates are expressed.
	Table    map[string]map[string]float64 `json:"table,omitempty" yaml:"table,omitempty"`
	Currency string                        `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Inputs returns the field names that feed the price calculation.
func (p Pricing) Inputs() []string {
	var out []string
	for _, name := range []string{p.CategoryField, p.TierField, p.QuantityField} {
		if strings.TrimSpace(name) != "" {
			out = append(out, name)
		}
	}
	return out
}

// SummaryConfig lists the fields echoed on the final step.
type SummaryConfig struct {
	Fields   []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Template string   `json:"template,omitempty" yaml:"template,omitempty"`
}

// Definition is the complete, declarative description of one wizard form.
// It plays the role of the field registry.
type Definition struct {
	ID              string        `json:"id" yaml:"id"`
	Section         string        `json:"section,omitempty" yaml:"section,omitempty"`
	Title           string        `json:"title,omitempty" yaml:"title,omitempty"`
	StoragePrefix   string        `json:"storagePrefix,omitempty" yaml:"storagePrefix,omitempty"`
	PhonePolicy     PhonePolicy   `json:"phonePolicy,omitempty" yaml:"phonePolicy,omitempty"`
	ReferencePrefix string        `json:"referencePrefix,omitempty" yaml:"referencePrefix,omitempty"`
	Steps           []Step        `json:"steps" yaml:"steps"`
	Pricing         Pricing       `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	Summary         SummaryConfig `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// TotalSteps reports the number of steps.
func (d Definition) TotalSteps() int {
	return len(d.Steps)
}

// StepAt returns the 1-indexed step n.
func (d Definition) StepAt(n int) (Step, bool) {
	if n < 1 || n > len(d.Steps) {
		return Step{}, false
	}
	return d.Steps[n-1], true
}

// Field looks a field up by name across all steps.
func (d Definition) Field(name string) (FieldSpec, bool) {
	for _, step := range d.Steps {
		for _, field := range step.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return FieldSpec{}, false
}

// StorageKey returns the persistence key "<storagePrefix><formId>Data".
func (d Definition) StorageKey() string {
	return d.StoragePrefix + d.ID + "Data"
}

// Values maps field names to their current string value. Last write wins.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Get returns the trimmed value for name.
func (v Values) Get(name string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v[name])
}
