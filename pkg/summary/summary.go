package summary

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/pricing"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// Unspecified is shown for summary fields the user left empty.
const Unspecified = "غير محدد"

// Line is one label/value row of the summary.
type Line struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is everything the presentation layer needs to show the final
// review step. It is derived data and never authoritative.
type Document struct {
	FormID string          `json:"formId"`
	Title  string          `json:"title,omitempty"`
	Lines  []Line          `json:"lines"`
	Price  pricing.Summary `json:"price"`
}

// HasPrice reports whether the document carries a priced summary.
func (d Document) HasPrice() bool {
	return d.Price.Strategy != "" && d.Price.Strategy != model.PricingNone
}

// Build derives the summary document for values. When the definition lists
// no summary fields every non-checkbox field is echoed in declaration order.
func Build(def model.Definition, values model.Values, price pricing.Summary) Document {
	doc := Document{
		FormID: def.ID,
		Title:  def.Title,
		Price:  price,
	}
	for _, name := range summaryFields(def) {
		field, ok := def.Field(name)
		if !ok {
			continue
		}
		doc.Lines = append(doc.Lines, Line{
			Field: name,
			Label: field.DisplayLabel(),
			Value: DisplayValue(field, values.Get(name)),
		})
	}
	return doc
}

// DisplayValue resolves the human readable form of value for field.
func DisplayValue(field model.FieldSpec, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Unspecified
	}
	switch field.Kind {
	case model.FieldKindTel:
		return FormatPhone(value)
	case model.FieldKindCheckbox:
		if validation.Checked(value) {
			return "✓"
		}
		return Unspecified
	case model.FieldKindRadio, model.FieldKindSelect:
		return field.OptionLabel(value)
	}
	return value
}

func summaryFields(def model.Definition) []string {
	if len(def.Summary.Fields) > 0 {
		return def.Summary.Fields
	}
	var names []string
	for _, step := range def.Steps {
		for _, field := range step.Fields {
			if field.Kind == model.FieldKindCheckbox {
				continue
			}
			names = append(names, field.Name)
		}
	}
	return names
}
