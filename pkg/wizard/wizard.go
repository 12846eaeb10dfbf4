package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/persistence"
	"github.com/goliatone/go-formwizard/pkg/pricing"
	"github.com/goliatone/go-formwizard/pkg/reference"
	"github.com/goliatone/go-formwizard/pkg/summary"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// Phase is the coarse lifecycle position of a wizard.
type Phase string

const (
	PhaseActive    Phase = "active"
	PhaseSubmitted Phase = "submitted"
)

// State is a snapshot of the wizard. CurrentStep is 1-indexed.
type State struct {
	CurrentStep int          `json:"currentStep"`
	TotalSteps  int          `json:"totalSteps"`
	Values      model.Values `json:"values"`
	Submitting  bool         `json:"submitting"`
	LastSavedAt time.Time    `json:"lastSavedAt"`
	Phase       Phase        `json:"phase"`
	Reference   string       `json:"reference,omitempty"`
}

// Wizard drives one multi-step form. All methods are safe for concurrent
// use; the debounce timer fires on its own goroutine.
type Wizard struct {
	def        model.Definition
	key        string
	validator  *validation.Validator
	locale     string
	calc       *pricing.Calculator
	priceTable pricing.Table
	inputs     map[string]struct{}
	store      persistence.Store
	sink       notify.Sink
	observers  []Observer
	submitter  Submitter
	clock      Clock
	logger     *zap.Logger
	debounce   time.Duration
	refs       *reference.Generator
	newID      func() string
	messages   Messages

	mu         sync.Mutex
	state      State
	interacted bool
	restored   bool
	closed     bool
	timer      Timer
	timerGen   uint64
	seq        uint64

	saveMu      sync.Mutex
	lastWritten uint64
}

// New builds a wizard for def positioned at step 1 with no values. Call
// Restore before the first interaction to resume a saved session.
func New(def model.Definition, options ...Option) (*Wizard, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	w := &Wizard{
		def:       def,
		key:       def.StorageKey(),
		store:     persistence.NewMemoryStore(),
		sink:      notify.Discard,
		submitter: acceptAll,
		clock:     SystemClock,
		logger:    zap.NewNop(),
		debounce:  DefaultDebounce,
		newID:     uuid.NewString,
		messages:  DefaultMessages(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}

	if w.validator == nil {
		w.validator = validation.New(
			validation.WithPhonePolicy(def.PhonePolicy),
			validation.WithLocale(w.locale),
		)
	}
	if w.refs == nil {
		w.refs = reference.New(def.ReferencePrefix)
	}
	var calcOpts []pricing.CalculatorOption
	if w.priceTable != nil {
		calcOpts = append(calcOpts, pricing.WithTable(w.priceTable))
	}
	w.calc = pricing.NewCalculator(def.Pricing, calcOpts...)
	w.inputs = make(map[string]struct{})
	for _, name := range w.calc.Inputs() {
		w.inputs[name] = struct{}{}
	}
	w.logger = w.logger.With(zap.String("form", def.ID))

	w.state = State{
		CurrentStep: 1,
		TotalSteps:  def.TotalSteps(),
		Values:      model.Values{},
		Phase:       PhaseActive,
	}
	return w, nil
}

// Definition returns the form definition.
func (w *Wizard) Definition() model.Definition {
	return w.def
}

// StorageKey returns the key auto-saves are written under.
func (w *Wizard) StorageKey() string {
	return w.key
}

// State returns a snapshot of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.state
	out.Values = w.state.Values.Clone()
	return out
}

// Summary derives the summary from the current values.
func (w *Wizard) Summary() summary.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.summaryLocked()
}

// Close stops any pending auto-save. A pending edit that has not been
// committed is not flushed.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.cancelTimerLocked()
}

func (w *Wizard) summaryLocked() summary.Document {
	return summary.Build(w.def, w.state.Values, w.calc.Calculate(w.state.Values))
}

// guardLocked reports why a mutating call must be rejected.
func (w *Wizard) guardLocked() error {
	switch {
	case w.closed:
		return ErrClosed
	case w.state.Phase == PhaseSubmitted:
		return ErrAlreadySubmitted
	case w.state.Submitting:
		return ErrSubmitInProgress
	}
	return nil
}

// outbox collects everything produced under the lock so it can be
// delivered after the lock is released.
type outbox struct {
	events []Event
	notes  []notify.Notification
	save   *snapshot
}

func (o *outbox) event(e Event) {
	o.events = append(o.events, e)
}

func (o *outbox) note(level notify.Level, message string) {
	if message == "" {
		return
	}
	o.notes = append(o.notes, notify.Notification{Level: level, Message: message})
}

func (w *Wizard) deliver(o *outbox) {
	for _, e := range o.events {
		for _, obs := range w.observers {
			obs.OnEvent(e)
		}
	}
	for _, n := range o.notes {
		w.sink.Notify(n)
	}
	if o.save != nil {
		w.write(*o.save)
	}
}

func (w *Wizard) stepShownLocked(o *outbox) {
	step := w.state.CurrentStep
	title := ""
	if s, ok := w.def.StepAt(step); ok {
		title = s.Title
	}
	o.event(Event{
		Kind:     EventStepShown,
		Step:     step,
		Total:    w.state.TotalSteps,
		Title:    title,
		Progress: Progress(step, w.state.TotalSteps),
	})
}

func (w *Wizard) summaryUpdatedLocked(o *outbox) {
	doc := w.summaryLocked()
	o.event(Event{Kind: EventSummaryUpdated, Summary: &doc})
}

func (w *Wizard) issuesLocked(o *outbox, issues []validation.Issue) {
	for _, issue := range issues {
		o.event(Event{Kind: EventFieldInvalid, Field: issue.Field, Result: issue.Result})
	}
	if len(issues) == 0 {
		return
	}
	// A lone step rule failure carries a more specific message than the
	// aggregate one ("يرجى اختيار مستشار").
	if len(issues) == 1 && stepRule(issues[0].Result.Rule) {
		o.note(notify.LevelWarning, issues[0].Result.Message)
		return
	}
	o.note(notify.LevelWarning, w.messages.Incomplete)
}

func stepRule(rule string) bool {
	switch model.RuleKind(rule) {
	case model.RuleRequireSelection, model.RuleRequireChecked:
		return true
	}
	return false
}
