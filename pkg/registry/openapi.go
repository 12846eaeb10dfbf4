package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Vendor extensions read from OpenAPI documents.
const (
	extStep      = "x-wizard-step"
	extKind      = "x-wizard-kind"
	extOrder     = "x-wizard-order"
	extFuture    = "x-wizard-future"
	extLabels    = "x-wizard-labels"
	extSteps     = "x-wizard-steps"
	extSection   = "x-wizard-section"
	extReference = "x-wizard-reference"
	extPhone     = "x-wizard-phone"
)

var errNoRequestBody = errors.New("registry: operation has no request body schema")

// FromOpenAPI derives a definition from the request body of operationID.
// Each body property becomes a field; x-wizard-step assigns it to a step
// (1 when absent) and x-wizard-kind overrides the inferred input kind.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (model.Definition, error) {
	if err := ctx.Err(); err != nil {
		return model.Definition{}, err
	}
	if len(data) == 0 {
		return model.Definition{}, errors.New("registry: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Definition{}, fmt.Errorf("registry: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return model.Definition{}, fmt.Errorf("registry: operation %q not found", operationID)
	}
	body := requestSchema(op.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return model.Definition{}, fmt.Errorf("registry: operation %q: %w", operationID, errNoRequestBody)
	}

	def := model.Definition{
		ID:              operationID,
		Title:           op.Summary,
		Section:         stringExt(op.Extensions, extSection),
		ReferencePrefix: stringExt(op.Extensions, extReference),
		PhonePolicy:     model.PhonePolicy(stringExt(op.Extensions, extPhone)),
	}
	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	type placed struct {
		step  int
		order int
		field model.FieldSpec
	}
	var fields []placed
	maxStep := 1
	for name, ref := range body.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		step := intExt(ref.Value.Extensions, extStep, 1)
		if step < 1 {
			return model.Definition{}, fmt.Errorf("registry: operation %q property %q: %s must be >= 1", operationID, name, extStep)
		}
		if step > len(body.Properties) {
			return model.Definition{}, fmt.Errorf("registry: operation %q property %q: %s %d exceeds the %d properties available", operationID, name, extStep, step, len(body.Properties))
		}
		if step > maxStep {
			maxStep = step
		}
		_, isRequired := required[name]
		fields = append(fields, placed{
			step:  step,
			order: intExt(ref.Value.Extensions, extOrder, 0),
			field: fieldFromSchema(name, ref.Value, isRequired),
		})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].step != fields[j].step {
			return fields[i].step < fields[j].step
		}
		if fields[i].order != fields[j].order {
			return fields[i].order < fields[j].order
		}
		return fields[i].field.Name < fields[j].field.Name
	})

	titles := stringsExt(op.Extensions, extSteps)
	def.Steps = make([]model.Step, maxStep)
	for idx := range def.Steps {
		if idx < len(titles) {
			def.Steps[idx].Title = titles[idx]
		}
	}
	for _, p := range fields {
		def.Steps[p.step-1].Fields = append(def.Steps[p.step-1].Fields, p.field)
	}
	for idx, step := range def.Steps {
		if len(step.Fields) == 0 {
			return model.Definition{}, fmt.Errorf("registry: operation %q: step %d has no fields", operationID, idx+1)
		}
	}

	def = normalise(def)
	if err := def.Validate(); err != nil {
		return model.Definition{}, fmt.Errorf("registry: %w", err)
	}
	return def, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{item.Post, item.Put, item.Patch} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) model.FieldSpec {
	field := model.FieldSpec{
		Name:     name,
		Label:    src.Title,
		Help:     src.Description,
		Required: required,
		Kind:     inferKind(src),
	}
	if kind := stringExt(src.Extensions, extKind); kind != "" {
		field.Kind = model.FieldKind(kind)
	}
	if src.Min != nil {
		value := *src.Min
		field.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Max = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		field.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		field.MaxLength = &value
	}
	if future, ok := src.Extensions[extFuture].(bool); ok {
		field.FutureOnly = future
	}

	labels := stringMapExt(src.Extensions, extLabels)
	for _, raw := range src.Enum {
		value := fmt.Sprint(raw)
		field.Options = append(field.Options, model.Option{Value: value, Label: labels[value]})
	}
	return field
}

func inferKind(src *openapi3.Schema) model.FieldKind {
	switch {
	case src.Type.Is(openapi3.TypeBoolean):
		return model.FieldKindCheckbox
	case src.Type.Is(openapi3.TypeNumber), src.Type.Is(openapi3.TypeInteger):
		return model.FieldKindNumber
	case len(src.Enum) > 0:
		return model.FieldKindSelect
	}
	switch src.Format {
	case "email":
		return model.FieldKindEmail
	case "date", "date-time":
		return model.FieldKindDate
	case "phone", "tel":
		return model.FieldKindTel
	}
	if src.MaxLength != nil && *src.MaxLength > 255 {
		return model.FieldKindTextArea
	}
	return model.FieldKindText
}

func stringExt(ext map[string]any, key string) string {
	value, _ := ext[key].(string)
	return strings.TrimSpace(value)
}

func intExt(ext map[string]any, key string, fallback int) int {
	switch value := ext[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	default:
		return fallback
	}
}

func stringsExt(ext map[string]any, key string) []string {
	raw, ok := ext[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func stringMapExt(ext map[string]any, key string) map[string]string {
	raw, ok := ext[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out
}
