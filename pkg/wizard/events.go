package wizard

import (
	"time"

	"github.com/goliatone/go-formwizard/pkg/summary"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// EventKind names a render request sent to the presentation layer.
type EventKind string

const (
	EventStepShown      EventKind = "step_shown"
	EventFieldInvalid   EventKind = "field_invalid"
	EventFieldValid     EventKind = "field_valid"
	EventSummaryUpdated EventKind = "summary_updated"
	EventSaved          EventKind = "saved"
	EventSubmitted      EventKind = "submitted"
)

// Event is a render request. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind `json:"kind"`

	// StepShown
	Step     int     `json:"step,omitempty"`
	Total    int     `json:"total,omitempty"`
	Title    string  `json:"title,omitempty"`
	Progress float64 `json:"progress,omitempty"`

	// FieldInvalid / FieldValid
	Field  string            `json:"field,omitempty"`
	Result validation.Result `json:"result,omitempty"`

	// SummaryUpdated
	Summary *summary.Document `json:"summary,omitempty"`

	// Saved
	SavedAt time.Time `json:"savedAt,omitempty"`

	// Submitted
	Reference string `json:"reference,omitempty"`
}

// Observer receives render requests. Events are delivered synchronously,
// in order, without any wizard lock held, so observers may query the
// wizard.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f.
func (f ObserverFunc) OnEvent(e Event) {
	if f != nil {
		f(e)
	}
}

// Progress returns step/total as a percentage.
func Progress(step, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(step) / float64(total) * 100
}
