package wizard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/persistence"
	"github.com/goliatone/go-formwizard/pkg/pricing"
	"github.com/goliatone/go-formwizard/pkg/reference"
	"github.com/goliatone/go-formwizard/pkg/summary"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// DefaultDebounce is the idle window before an edit is auto-saved.
const DefaultDebounce = time.Second

const defaultSaveTimeout = 5 * time.Second

// Submission is handed to the Submitter once the final step validates.
type Submission struct {
	ID          string           `json:"id"`
	FormID      string           `json:"formId"`
	Values      model.Values     `json:"values"`
	Summary     summary.Document `json:"summary"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Reference   string           `json:"reference,omitempty"`
}

// Submitter delivers a completed form. It may block; the wizard does not
// hold its lock while waiting.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub Submission) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, sub Submission) error {
	return f(ctx, sub)
}

var acceptAll = SubmitterFunc(func(context.Context, Submission) error { return nil })

// Messages are the user-facing notification texts.
type Messages struct {
	StepAdvanced string
	Incomplete   string
	Restored     string
	// Submitted may contain one %s verb for the reference number.
	Submitted    string
	SubmitFailed string
}

// DefaultMessages returns the Arabic defaults.
func DefaultMessages() Messages {
	return Messages{
		StepAdvanced: "تم الانتقال للخطوة التالية بنجاح",
		Incomplete:   "يرجى إكمال جميع الحقول المطلوبة",
		Restored:     "تم استرداد البيانات المحفوظة",
		Submitted:    "تم إرسال طلبك بنجاح! رقم المرجع: %s",
		SubmitFailed: "حدث خطأ في الإرسال. يرجى المحاولة مرة أخرى.",
	}
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithStore sets the persistence store. Defaults to an in-memory store.
func WithStore(store persistence.Store) Option {
	return func(w *Wizard) {
		if store != nil {
			w.store = store
		}
	}
}

// WithSink sets the notification sink.
func WithSink(sink notify.Sink) Option {
	return func(w *Wizard) {
		if sink != nil {
			w.sink = sink
		}
	}
}

// WithObserver registers a render request observer. May be repeated.
func WithObserver(obs Observer) Option {
	return func(w *Wizard) {
		if obs != nil {
			w.observers = append(w.observers, obs)
		}
	}
}

// WithSubmitter sets the submission collaborator. The default accepts
// every submission.
func WithSubmitter(s Submitter) Option {
	return func(w *Wizard) {
		if s != nil {
			w.submitter = s
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(w *Wizard) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithLogger sets the logger used for persistence and restore failures.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce overrides the auto-save idle window.
func WithDebounce(d time.Duration) Option {
	return func(w *Wizard) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithValidator overrides the validator built from the definition.
func WithValidator(v *validation.Validator) Option {
	return func(w *Wizard) {
		if v != nil {
			w.validator = v
		}
	}
}

// WithLocale selects the validation message locale used when no validator
// is supplied.
func WithLocale(locale string) Option {
	return func(w *Wizard) {
		w.locale = locale
	}
}

// WithPriceTable overrides the price table declared on the definition.
func WithPriceTable(table pricing.Table) Option {
	return func(w *Wizard) {
		if table != nil {
			w.priceTable = table
		}
	}
}

// WithReferences sets the reference number generator.
func WithReferences(g *reference.Generator) Option {
	return func(w *Wizard) {
		if g != nil {
			w.refs = g
		}
	}
}

// WithIDSource overrides how submission ids are minted.
func WithIDSource(fn func() string) Option {
	return func(w *Wizard) {
		if fn != nil {
			w.newID = fn
		}
	}
}

// WithMessages overrides the notification texts. Empty fields keep their
// defaults.
func WithMessages(m Messages) Option {
	return func(w *Wizard) {
		if m.StepAdvanced != "" {
			w.messages.StepAdvanced = m.StepAdvanced
		}
		if m.Incomplete != "" {
			w.messages.Incomplete = m.Incomplete
		}
		if m.Restored != "" {
			w.messages.Restored = m.Restored
		}
		if m.Submitted != "" {
			w.messages.Submitted = m.Submitted
		}
		if m.SubmitFailed != "" {
			w.messages.SubmitFailed = m.SubmitFailed
		}
	}
}
