package registry

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
)

func TestBuiltinLoadsBundledDefinitions(t *testing.T) {
	reg, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}

	wantSections := []string{"business-tourism", "consulting", "courses", "incubator", "real-estate"}
	if diff := cmp.Diff(wantSections, reg.Sections()); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	def, ok := reg.Lookup("consulting")
	if !ok {
		t.Fatalf("expected consulting section")
	}
	if def.ID != "booking-form" || def.TotalSteps() != 4 {
		t.Fatalf("unexpected consulting definition: id=%q steps=%d", def.ID, def.TotalSteps())
	}
	if def.Pricing.Strategy != model.PricingDuration {
		t.Fatalf("expected duration pricing, got %q", def.Pricing.Strategy)
	}
	if got := reg.Source(def.ID); got != "consulting.yaml" {
		t.Fatalf("expected source consulting.yaml, got %q", got)
	}

	tourism, ok := reg.Lookup("business-booking")
	if !ok {
		t.Fatalf("expected lookup by id to resolve")
	}
	if tourism.PhonePolicy != model.PhoneInternational {
		t.Fatalf("expected international phone policy, got %q", tourism.PhonePolicy)
	}
	if got := tourism.Pricing.Table["france"]["8"]; got != 2200 {
		t.Fatalf("expected france/8 to cost 2200, got %v", got)
	}
}

func TestBuiltinChoiceFieldsListOptions(t *testing.T) {
	reg, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	for _, id := range reg.IDs() {
		def, _ := reg.Definition(id)
		for _, step := range def.Steps {
			for _, field := range step.Fields {
				if field.Kind != model.FieldKindSelect && field.Kind != model.FieldKindRadio {
					continue
				}
				if len(field.Options) == 0 {
					t.Errorf("%s: choice field %q has no options", id, field.Name)
				}
			}
		}
	}

	courses, ok := reg.Lookup("courses")
	if !ok {
		t.Fatalf("expected courses section")
	}
	field, _ := courses.Field("course-select")
	if len(field.Options) != 14 {
		t.Fatalf("expected 14 courses, got %d", len(field.Options))
	}
}

func TestLoadFSAcceptsJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.json": {Data: []byte(`{
			"id": "contact",
			"section": "contact",
			"steps": [{"fields": [{"name": "Email", "kind": "EMAIL", "required": true}]}]
		}`)},
		"forms/newsletter.yml": {Data: []byte(`
id: newsletter
steps:
  - fields:
      - {name: email, kind: email}
`)},
		"forms/README.md": {Data: []byte("ignored")},
	}

	reg, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "newsletter"}, reg.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	contact, _ := reg.Definition("contact")
	field, ok := contact.Field("Email")
	if !ok {
		t.Fatalf("expected Email field")
	}
	if field.Kind != model.FieldKindEmail {
		t.Fatalf("expected kind to be normalised, got %q", field.Kind)
	}
}

func TestLoadFSNilIsEmpty(t *testing.T) {
	reg, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !reg.Empty() {
		t.Fatalf("expected empty registry")
	}
}

func TestLoadFSRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name: "duplicate id",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("id: same\nsteps: [{fields: [{name: a, kind: text}]}]\n")},
				"b.yaml": {Data: []byte("id: same\nsteps: [{fields: [{name: b, kind: text}]}]\n")},
			},
			wantErr: `duplicate definition "same"`,
		},
		{
			name: "duplicate section",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("id: one\nsection: shared\nsteps: [{fields: [{name: a, kind: text}]}]\n")},
				"b.yaml": {Data: []byte("id: two\nsection: shared\nsteps: [{fields: [{name: b, kind: text}]}]\n")},
			},
			wantErr: `section "shared" already served by "one"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty", data: "  ", wantErr: "is empty"},
		{name: "garbage", data: "id: [unterminated", wantErr: "invalid JSON or YAML"},
		{name: "no steps", data: "id: lonely\n", wantErr: "at least one step"},
		{name: "bad kind", data: "id: x\nsteps: [{fields: [{name: a, kind: slider}]}]\n", wantErr: `unknown kind "slider"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "test.yaml")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAddValidates(t *testing.T) {
	reg := New()
	if err := reg.Add(model.Definition{ID: "broken"}); err == nil {
		t.Fatalf("expected validation error")
	}
	def := model.Definition{
		ID:      "ok",
		Section: "ok-section",
		Steps:   []model.Step{{Fields: []model.FieldSpec{{Name: "a", Kind: model.FieldKindText}}}},
	}
	if err := reg.Add(def); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok := reg.Lookup("ok-section"); !ok {
		t.Fatalf("expected section lookup to resolve")
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatalf("expected unknown name to miss")
	}
}

const bookingOpenAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Bookings", "version": "1.0.0"},
  "paths": {
    "/bookings": {
      "post": {
        "operationId": "createBooking",
        "summary": "Book a visit",
        "x-wizard-section": "visits",
        "x-wizard-reference": "VIS",
        "x-wizard-steps": ["Visit", "Contact"],
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "kind"],
                "properties": {
                  "kind": {
                    "type": "string",
                    "title": "Kind",
                    "enum": ["tour", "meeting"],
                    "x-wizard-step": 1,
                    "x-wizard-order": 1,
                    "x-wizard-labels": {"tour": "Guided tour"}
                  },
                  "date": {
                    "type": "string",
                    "format": "date",
                    "x-wizard-step": 1,
                    "x-wizard-order": 2,
                    "x-wizard-future": true
                  },
                  "guests": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 10,
                    "x-wizard-step": 1,
                    "x-wizard-order": 3
                  },
                  "email": {"type": "string", "format": "email", "x-wizard-step": 2},
                  "phone": {"type": "string", "x-wizard-step": 2, "x-wizard-kind": "tel"},
                  "name": {"type": "string", "minLength": 3, "maxLength": 80, "x-wizard-step": 2}
                }
              }
            }
          }
        }
      }
    }
  }
}`

func TestFromOpenAPI(t *testing.T) {
	def, err := FromOpenAPI(context.Background(), []byte(bookingOpenAPI), "createBooking")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	minGuests, maxGuests := 1.0, 10.0
	minName, maxName := 3, 80
	want := model.Definition{
		ID:              "createBooking",
		Title:           "Book a visit",
		Section:         "visits",
		ReferencePrefix: "VIS",
		Steps: []model.Step{
			{
				Title: "Visit",
				Fields: []model.FieldSpec{
					{
						Name:     "kind",
						Label:    "Kind",
						Kind:     model.FieldKindSelect,
						Required: true,
						Options:  []model.Option{{Value: "tour", Label: "Guided tour"}, {Value: "meeting"}},
					},
					{Name: "date", Kind: model.FieldKindDate, FutureOnly: true},
					{Name: "guests", Kind: model.FieldKindNumber, Min: &minGuests, Max: &maxGuests},
				},
			},
			{
				Title: "Contact",
				Fields: []model.FieldSpec{
					{Name: "email", Kind: model.FieldKindEmail, Required: true},
					{Name: "name", Kind: model.FieldKindText, MinLength: &minName, MaxLength: &maxName},
					{Name: "phone", Kind: model.FieldKindTel},
				},
			},
		},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPIErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		opID    string
		wantErr string
	}{
		{name: "empty", data: "", opID: "x", wantErr: "document is empty"},
		{name: "unknown operation", data: bookingOpenAPI, opID: "deleteBooking", wantErr: `operation "deleteBooking" not found`},
		{
			name:    "no body",
			data:    `{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{"/x":{"post":{"operationId":"bare","responses":{"200":{"description":"ok"}}}}}}`,
			opID:    "bare",
			wantErr: "no request body schema",
		},
		{
			name: "gap in steps",
			data: `{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{"/x":{"post":{"operationId":"gap",
				"requestBody":{"content":{"application/json":{"schema":{"type":"object","properties":{
				"a":{"type":"string","x-wizard-step":1},"b":{"type":"string","x-wizard-step":3}}}}}}}}}}`,
			opID:    "gap",
			wantErr: "step 2 has no fields",
		},
		{
			name: "step beyond properties",
			data: `{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{"/x":{"post":{"operationId":"far",
				"requestBody":{"content":{"application/json":{"schema":{"type":"object","properties":{
				"a":{"type":"string","x-wizard-step":2000000000}}}}}}}}}}`,
			opID:    "far",
			wantErr: "x-wizard-step 2000000000 exceeds the 1 properties available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromOpenAPI(context.Background(), []byte(tt.data), tt.opID)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
