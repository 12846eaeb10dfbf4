package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errDefinitionIDMissing = errors.New("model: definition id is required")
	errDefinitionNoSteps   = errors.New("model: definition requires at least one step")
)

// Validate checks a definition for structural mistakes before a wizard is
// built from it.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errDefinitionIDMissing
	}
	if len(d.Steps) == 0 {
		return errDefinitionNoSteps
	}
	switch d.PhonePolicy {
	case "", PhoneLocal, PhoneInternational:
	default:
		return fmt.Errorf("model: definition %q: unknown phone policy %q", d.ID, d.PhonePolicy)
	}

	for idx, step := range d.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("model: definition %q step %d: %w", d.ID, idx+1, err)
		}
	}

	if err := d.validatePricing(); err != nil {
		return fmt.Errorf("model: definition %q: %w", d.ID, err)
	}
	for _, name := range d.Summary.Fields {
		if _, ok := d.Field(name); !ok {
			return fmt.Errorf("model: definition %q: summary references unknown field %q", d.ID, name)
		}
	}
	return nil
}

func validateStep(step Step) error {
	seen := make(map[string]struct{}, len(step.Fields))
	for _, field := range step.Fields {
		if err := validateField(field); err != nil {
			return err
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	for _, rule := range step.Rules {
		switch rule.Kind {
		case RuleRequireSelection, RuleRequireChecked:
		default:
			return fmt.Errorf("unknown rule kind %q", rule.Kind)
		}
		if _, ok := seen[rule.Field]; !ok {
			return fmt.Errorf("rule %s references field %q outside the step", rule.Kind, rule.Field)
		}
	}
	return nil
}

func validateField(field FieldSpec) error {
	if strings.TrimSpace(field.Name) == "" {
		return errors.New("field name is required")
	}
	if !field.Kind.Valid() {
		return fmt.Errorf("field %q: unknown kind %q", field.Name, field.Kind)
	}
	if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
		return fmt.Errorf("field %q: min %v exceeds max %v", field.Name, *field.Min, *field.Max)
	}
	if field.MinLength != nil && *field.MinLength < 0 {
		return fmt.Errorf("field %q: negative minLength", field.Name)
	}
	if field.MinLength != nil && field.MaxLength != nil && *field.MinLength > *field.MaxLength {
		return fmt.Errorf("field %q: minLength %d exceeds maxLength %d", field.Name, *field.MinLength, *field.MaxLength)
	}
	if field.FutureOnly && field.Kind != FieldKindDate {
		return fmt.Errorf("field %q: futureOnly applies to date fields only", field.Name)
	}
	return nil
}

func (d Definition) validatePricing() error {
	p := d.Pricing
	switch p.Strategy {
	case "", PricingNone:
		return nil
	case PricingGroup:
		if p.QuantityField == "" {
			return errors.New("group pricing requires quantityField")
		}
	case PricingDuration:
		if p.TierField == "" {
			return errors.New("duration pricing requires tierField")
		}
	default:
		return fmt.Errorf("unknown pricing strategy %q", p.Strategy)
	}
	if p.CategoryField == "" {
		return fmt.Errorf("%s pricing requires categoryField", p.Strategy)
	}
	for _, name := range p.Inputs() {
		if _, ok := d.Field(name); !ok {
			return fmt.Errorf("pricing references unknown field %q", name)
		}
	}
	return nil
}
