package validation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestValidate_Email(t *testing.T) {
	v := New(WithLocale(LocaleEnglish))
	spec := model.FieldSpec{Name: "email", Kind: model.FieldKindEmail, Required: true}

	got := v.Validate(spec, "a@b", testNow)
	want := Result{Rule: RuleEmail, Message: "invalid email"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("a@b mismatch (-want +got):\n%s", diff)
	}

	if res := v.Validate(spec, "a@b.com", testNow); !res.Valid {
		t.Fatalf("expected a@b.com to be valid, got %+v", res)
	}
}

func TestValidate_RequiredComesFirst(t *testing.T) {
	v := New()
	spec := model.FieldSpec{Name: "email", Kind: model.FieldKindEmail, Required: true, MinLength: intPtr(5)}

	got := v.Validate(spec, "   ", testNow)
	want := Result{Rule: RuleRequired, Message: "هذا الحقل مطلوب"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OptionalEmptyIsValid(t *testing.T) {
	v := New()
	spec := model.FieldSpec{Name: "notes", Kind: model.FieldKindEmail, MinLength: intPtr(10)}
	if res := v.Validate(spec, "", testNow); !res.Valid {
		t.Fatalf("expected empty optional value to be valid, got %+v", res)
	}
}

func TestValidate_Phone(t *testing.T) {
	spec := model.FieldSpec{Name: "phone", Kind: model.FieldKindTel, Required: true}

	cases := []struct {
		name   string
		policy model.PhonePolicy
		value  string
		valid  bool
	}{
		{name: "local mobile", value: "0551234567", valid: true},
		{name: "local with spaces", value: "05 51 23 45 67", valid: true},
		{name: "bad prefix", value: "0123456789", valid: false},
		{name: "too short", value: "055123456", valid: false},
		{name: "international rejected by default", value: "+213551234567", valid: false},
		{name: "international accepted", policy: model.PhoneInternational, value: "+213551234567", valid: true},
		{name: "international still accepts local", policy: model.PhoneInternational, value: "0771234567", valid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New(WithPhonePolicy(tc.policy), WithLocale(LocaleEnglish))
			res := v.Validate(spec, tc.value, testNow)
			if res.Valid != tc.valid {
				t.Fatalf("Validate(%q) valid=%v, want %v (%+v)", tc.value, res.Valid, tc.valid, res)
			}
			if !tc.valid && res.Rule != RulePhone {
				t.Fatalf("expected phone rule, got %q", res.Rule)
			}
		})
	}
}

func TestValidate_NumberRange(t *testing.T) {
	v := New(WithLocale(LocaleEnglish))
	spec := model.FieldSpec{Name: "age", Kind: model.FieldKindNumber, Min: floatPtr(18), Max: floatPtr(65)}

	cases := []struct {
		value string
		want  Result
	}{
		{value: "18", want: Valid},
		{value: "65", want: Valid},
		{value: "17", want: Result{Rule: RuleMin, Message: "must be at least 18"}},
		{value: "66", want: Result{Rule: RuleMax, Message: "must be at most 65"}},
		{value: "abc", want: Result{Rule: RuleNumber, Message: "must be a number"}},
		{value: "NaN", want: Result{Rule: RuleNumber, Message: "must be a number"}},
		{value: "+Inf", want: Result{Rule: RuleNumber, Message: "must be a number"}},
	}
	for _, tc := range cases {
		got := v.Validate(spec, tc.value, testNow)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Validate(%q) mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestValidate_NumberRangeArabicBoundsAreInclusive(t *testing.T) {
	v := New(WithLocale(LocaleArabic))
	spec := model.FieldSpec{Name: "guests", Kind: model.FieldKindNumber, Min: floatPtr(1), Max: floatPtr(50)}

	if got := v.Validate(spec, "1", testNow); !got.Valid {
		t.Fatalf("expected the lower bound to be accepted, got %+v", got)
	}
	if diff := cmp.Diff(Result{Rule: RuleMin, Message: "يجب ألا تقل القيمة عن 1"}, v.Validate(spec, "0", testNow)); diff != "" {
		t.Fatalf("min message mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Result{Rule: RuleMax, Message: "يجب ألا تزيد القيمة عن 50"}, v.Validate(spec, "51", testNow)); diff != "" {
		t.Fatalf("max message mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_FutureDate(t *testing.T) {
	v := New(WithLocale(LocaleEnglish))
	spec := model.FieldSpec{Name: "travel-date", Kind: model.FieldKindDate, FutureOnly: true}

	if res := v.Validate(spec, "2026-03-11", testNow); !res.Valid {
		t.Fatalf("expected tomorrow to be valid, got %+v", res)
	}
	if res := v.Validate(spec, "2026-03-10", testNow); res.Rule != RuleFuture {
		t.Fatalf("expected today to fail the future rule, got %+v", res)
	}
	if res := v.Validate(spec, "2026-03-10T12:00:00Z", testNow); !res.Valid {
		t.Fatalf("expected later today in RFC3339 to be valid, got %+v", res)
	}
	if res := v.Validate(spec, "10/03/2026", testNow); res.Rule != RuleDate {
		t.Fatalf("expected unparsable date to fail, got %+v", res)
	}

	plain := model.FieldSpec{Name: "birth", Kind: model.FieldKindDate}
	if res := v.Validate(plain, "1990-01-01", testNow); !res.Valid {
		t.Fatalf("expected past date without futureOnly to be valid, got %+v", res)
	}
}

func TestValidate_LengthCountsRunes(t *testing.T) {
	v := New(WithLocale(LocaleEnglish))
	spec := model.FieldSpec{Name: "name", Kind: model.FieldKindText, MinLength: intPtr(3), MaxLength: intPtr(5)}

	if res := v.Validate(spec, "أحمد", testNow); !res.Valid {
		t.Fatalf("expected four arabic letters to be valid, got %+v", res)
	}
	if diff := cmp.Diff(Result{Rule: RuleMinLength, Message: "must be at least 3 characters"}, v.Validate(spec, "ab", testNow)); diff != "" {
		t.Fatalf("minLength mismatch (-want +got):\n%s", diff)
	}
	if res := v.Validate(spec, "abcdef", testNow); res.Rule != RuleMaxLength {
		t.Fatalf("expected maxLength failure, got %+v", res)
	}
}

func TestCatalogFallback(t *testing.T) {
	catalog := DefaultCatalog()
	if got := catalog.Message("fr", RuleRequired); got != "هذا الحقل مطلوب" {
		t.Fatalf("expected arabic fallback, got %q", got)
	}
	if got := catalog.Message("en", "unknown-rule"); got != "unknown-rule" {
		t.Fatalf("expected rule id fallback, got %q", got)
	}
}

func TestValidateStep(t *testing.T) {
	v := New()
	step := model.Step{
		Fields: []model.FieldSpec{
			{Name: "consultant", Kind: model.FieldKindRadio},
			{Name: "client-name", Kind: model.FieldKindText, Required: true},
			{Name: "terms", Kind: model.FieldKindCheckbox},
		},
		Rules: []model.StepRule{
			{Kind: model.RuleRequireSelection, Field: "consultant", Message: "يرجى اختيار مستشار"},
			{Kind: model.RuleRequireChecked, Field: "terms", Message: "يجب الموافقة على الشروط والأحكام"},
		},
	}

	got := v.ValidateStep(step, model.Values{"terms": "off"}, testNow)
	want := []Issue{
		{Field: "client-name", Result: Result{Rule: RuleRequired, Message: "هذا الحقل مطلوب"}},
		{Field: "consultant", Result: Result{Rule: string(model.RuleRequireSelection), Message: "يرجى اختيار مستشار"}},
		{Field: "terms", Result: Result{Rule: string(model.RuleRequireChecked), Message: "يجب الموافقة على الشروط والأحكام"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	issues := v.ValidateStep(step, model.Values{"consultant": "ahmed", "client-name": "Sara", "terms": "on"}, testNow)
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}
