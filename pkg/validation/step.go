package validation

import (
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Issue ties a failing Result to the field it belongs to.
type Issue struct {
	Field  string `json:"field"`
	Result Result `json:"result"`
}

// ValidateStep validates every field of step and then its cross-field rules.
// A field reports at most one issue; rule failures are only reported for
// fields that passed field validation. Issues keep the field order of step.
func (v *Validator) ValidateStep(step model.Step, values model.Values, now time.Time) []Issue {
	var issues []Issue
	failed := make(map[string]struct{})
	for _, field := range step.Fields {
		res := v.Validate(field, values[field.Name], now)
		if res.Valid {
			continue
		}
		failed[field.Name] = struct{}{}
		issues = append(issues, Issue{Field: field.Name, Result: res})
	}

	for _, rule := range step.Rules {
		if _, already := failed[rule.Field]; already {
			continue
		}
		if res := v.checkRule(rule, values); !res.Valid {
			failed[rule.Field] = struct{}{}
			issues = append(issues, Issue{Field: rule.Field, Result: res})
		}
	}
	return issues
}

func (v *Validator) checkRule(rule model.StepRule, values model.Values) Result {
	value := values.Get(rule.Field)
	ok := true
	switch rule.Kind {
	case model.RuleRequireSelection:
		ok = value != ""
	case model.RuleRequireChecked:
		ok = Checked(value)
	}
	if ok {
		return Valid
	}
	message := rule.Message
	if strings.TrimSpace(message) == "" {
		message = v.catalog.Message(v.locale, RuleRequired)
	}
	return Invalid(string(rule.Kind), message)
}

// Checked reports whether a checkbox value counts as ticked.
func Checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case model.CheckedValue, "true", "1", "yes":
		return true
	default:
		return false
	}
}
