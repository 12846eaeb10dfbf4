package summary

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// StripMarkup removes every tag from a user supplied value so it can be
// echoed in an HTML summary.
func StripMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(valueSanitizer().Sanitize(trimmed))
}

func valueSanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return valuePolicy
}

// Sanitized returns a copy of doc with markup stripped from every line.
func (d Document) Sanitized() Document {
	out := d
	out.Lines = make([]Line, len(d.Lines))
	for i, line := range d.Lines {
		line.Label = StripMarkup(line.Label)
		line.Value = StripMarkup(line.Value)
		out.Lines[i] = line
	}
	return out
}
