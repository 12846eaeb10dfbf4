package tui

import (
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/summary"
)

// Theme holds the prefixes printed before notifications of each level.
type Theme struct {
	InfoPrefix    string
	SuccessPrefix string
	WarningPrefix string
	ErrorPrefix   string
}

// DefaultTheme uses plain ASCII markers.
func DefaultTheme() Theme {
	return Theme{
		InfoPrefix:    "[i] ",
		SuccessPrefix: "[✓] ",
		WarningPrefix: "[!] ",
		ErrorPrefix:   "[x] ",
	}
}

func (t Theme) prefix(level notify.Level) string {
	switch level {
	case notify.LevelSuccess:
		return t.SuccessPrefix
	case notify.LevelWarning:
		return t.WarningPrefix
	case notify.LevelError:
		return t.ErrorPrefix
	default:
		return t.InfoPrefix
	}
}

// Labels are the navigation captions offered after each step.
type Labels struct {
	Next   string
	Back   string
	Submit string
	Retry  string
}

// DefaultLabels returns the Arabic captions used by the bundled forms.
func DefaultLabels() Labels {
	return Labels{
		Next:   "التالي",
		Back:   "السابق",
		Submit: "إرسال الطلب",
		Retry:  "إعادة المحاولة؟",
	}
}

// Option configures the runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies notification prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithLabels overrides the navigation captions.
func WithLabels(labels Labels) Option {
	return func(r *Runner) {
		r.labels = labels
	}
}

// WithSummaryRenderer overrides the renderer used for the final step
// summary.
func WithSummaryRenderer(renderer *summary.Renderer) Option {
	return func(r *Runner) {
		if renderer != nil {
			r.summaries = renderer
		}
	}
}
