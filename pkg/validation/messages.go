package validation

import (
	"fmt"
	"strings"
)

// Rule identifiers reported in Result.Rule.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RulePhone     = "phone"
	RuleNumber    = "number"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleFuture    = "future"
	RuleDate      = "date"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
)

// Locales shipped with the default catalog.
const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

// Catalog maps locale -> rule -> message format. Formats may use a single %v
// verb for the violated bound.
type Catalog map[string]map[string]string

// DefaultCatalog returns the built-in Arabic and English messages.
func DefaultCatalog() Catalog {
	return Catalog{
		LocaleArabic: {
			RuleRequired:  "هذا الحقل مطلوب",
			RuleEmail:     "يرجى إدخال بريد إلكتروني صحيح",
			RulePhone:     "يرجى إدخال رقم هاتف صحيح (05/06/07)",
			RuleNumber:    "يرجى إدخال رقم صحيح",
			RuleMin:       "يجب ألا تقل القيمة عن %v",
			RuleMax:       "يجب ألا تزيد القيمة عن %v",
			RuleDate:      "يرجى إدخال تاريخ صحيح",
			RuleFuture:    "يجب أن يكون التاريخ في المستقبل",
			RuleMinLength: "يجب أن يكون النص %v أحرف على الأقل",
			RuleMaxLength: "يجب ألا يتجاوز النص %v حرفاً",
		},
		LocaleEnglish: {
			RuleRequired:  "required",
			RuleEmail:     "invalid email",
			RulePhone:     "invalid phone",
			RuleNumber:    "must be a number",
			RuleMin:       "must be at least %v",
			RuleMax:       "must be at most %v",
			RuleDate:      "invalid date",
			RuleFuture:    "must be a future date",
			RuleMinLength: "must be at least %v characters",
			RuleMaxLength: "must be at most %v characters",
		},
	}
}

// Message formats the message for rule in locale, falling back to Arabic and
// then to the rule id.
func (c Catalog) Message(locale, rule string, args ...any) string {
	format := c.lookup(locale, rule)
	if format == "" {
		format = c.lookup(LocaleArabic, rule)
	}
	if format == "" {
		return rule
	}
	if len(args) == 0 || !strings.Contains(format, "%") {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func (c Catalog) lookup(locale, rule string) string {
	if c == nil {
		return ""
	}
	messages, ok := c[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return ""
	}
	return messages[rule]
}
