package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formwizard/pkg/model"
)

var (
	emailPattern              = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	localPhonePattern         = regexp.MustCompile(`^0[567][0-9]{8}$`)
	internationalPhonePattern = regexp.MustCompile(`^(\+213|0)[567][0-9]{8}$`)
)

// DateLayout is the layout of HTML date inputs.
const DateLayout = "2006-01-02"

// Result is the outcome of validating one field. Invalid results carry the
// first failing rule and its message.
type Result struct {
	Valid   bool   `json:"valid"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// Valid is the zero-issue result.
var Valid = Result{Valid: true}

// Invalid builds a failing result.
func Invalid(rule, message string) Result {
	return Result{Rule: rule, Message: message}
}

// Validator applies the field rules. The zero value is not usable; build one
// with New.
type Validator struct {
	locale   string
	catalog  Catalog
	phone    model.PhonePolicy
	location *time.Location
}

// Option configures a Validator.
type Option func(*Validator)

// WithLocale selects the message locale ("ar" by default).
func WithLocale(locale string) Option {
	return func(v *Validator) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			v.locale = trimmed
		}
	}
}

// WithCatalog replaces the message catalog.
func WithCatalog(catalog Catalog) Option {
	return func(v *Validator) {
		if len(catalog) > 0 {
			v.catalog = catalog
		}
	}
}

// WithPhonePolicy selects the phone pattern. Local numbers only by default.
func WithPhonePolicy(policy model.PhonePolicy) Option {
	return func(v *Validator) {
		if policy != "" {
			v.phone = policy
		}
	}
}

// WithLocation sets the zone date-only values are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.location = loc
		}
	}
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{
		locale:   LocaleArabic,
		catalog:  DefaultCatalog(),
		phone:    model.PhoneLocal,
		location: time.UTC,
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Locale reports the configured message locale.
func (v *Validator) Locale() string {
	return v.locale
}

// Validate checks value against spec. Rules run in order (required, then the
// kind-specific rule, then length bounds) and the first failure wins. now is
// the reference instant for future-date checks.
func (v *Validator) Validate(spec model.FieldSpec, value string, now time.Time) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if spec.Required {
			return v.invalid(RuleRequired)
		}
		return Valid
	}

	if res := v.checkKind(spec, trimmed, now); !res.Valid {
		return res
	}

	length := utf8.RuneCountInString(trimmed)
	if spec.MinLength != nil && length < *spec.MinLength {
		return v.invalid(RuleMinLength, *spec.MinLength)
	}
	if spec.MaxLength != nil && length > *spec.MaxLength {
		return v.invalid(RuleMaxLength, *spec.MaxLength)
	}
	return Valid
}

func (v *Validator) checkKind(spec model.FieldSpec, value string, now time.Time) Result {
	switch spec.Kind {
	case model.FieldKindEmail:
		if !emailPattern.MatchString(value) {
			return v.invalid(RuleEmail)
		}
	case model.FieldKindTel:
		if !v.PhoneValid(value) {
			return v.invalid(RulePhone)
		}
	case model.FieldKindNumber:
		number, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
			return v.invalid(RuleNumber)
		}
		if spec.Min != nil && number < *spec.Min {
			return v.invalid(RuleMin, *spec.Min)
		}
		if spec.Max != nil && number > *spec.Max {
			return v.invalid(RuleMax, *spec.Max)
		}
	case model.FieldKindDate:
		if !spec.FutureOnly {
			return Valid
		}
		date, ok := v.parseDate(value)
		if !ok {
			return v.invalid(RuleDate)
		}
		if !date.After(now) {
			return v.invalid(RuleFuture)
		}
	}
	return Valid
}

// PhoneValid reports whether value, with whitespace removed, matches the
// configured phone policy.
func (v *Validator) PhoneValid(value string) bool {
	compact := StripSpaces(value)
	if v.phone == model.PhoneInternational {
		return internationalPhonePattern.MatchString(compact)
	}
	return localPhonePattern.MatchString(compact)
}

func (v *Validator) parseDate(value string) (time.Time, bool) {
	if date, err := time.ParseInLocation(DateLayout, value, v.location); err == nil {
		return date, true
	}
	if stamp, err := time.Parse(time.RFC3339, value); err == nil {
		return stamp, true
	}
	return time.Time{}, false
}

func (v *Validator) invalid(rule string, args ...any) Result {
	return Invalid(rule, v.catalog.Message(v.locale, rule, args...))
}

// StripSpaces removes every whitespace rune from value.
func StripSpaces(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}
