package wizard

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/notify"
)

// Submit validates the final step and hands the form to the Submitter.
// While a call is waiting on the submitter further calls return
// ErrSubmitInProgress without reaching it. On success the saved blob and
// the values are cleared and a reference number is assigned; on failure
// the wizard stays on the final step with its values intact.
func (w *Wizard) Submit(ctx context.Context) (Submission, error) {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return Submission{}, err
	}
	if w.state.CurrentStep != w.state.TotalSteps {
		w.mu.Unlock()
		return Submission{}, ErrNotFinalStep
	}
	w.interacted = true

	var o outbox
	step, _ := w.def.StepAt(w.state.CurrentStep)
	if issues := w.validator.ValidateStep(step, w.state.Values, w.clock.Now()); len(issues) > 0 {
		w.issuesLocked(&o, issues)
		w.mu.Unlock()
		w.deliver(&o)
		return Submission{}, ErrIncomplete
	}

	w.state.Submitting = true
	sub := Submission{
		ID:          w.newID(),
		FormID:      w.def.ID,
		Values:      w.state.Values.Clone(),
		Summary:     w.summaryLocked(),
		SubmittedAt: w.clock.Now(),
	}
	w.mu.Unlock()

	err := w.submitter.Submit(ctx, sub)

	w.mu.Lock()
	w.state.Submitting = false
	if err != nil {
		o.note(notify.LevelError, w.messages.SubmitFailed)
		w.mu.Unlock()
		w.logger.Warn("submission failed", zap.String("submission", sub.ID), zap.Error(err))
		w.deliver(&o)
		return Submission{}, fmt.Errorf("wizard: submit: %w", err)
	}

	sub.Reference = w.refs.Next(sub.SubmittedAt)
	w.state.Phase = PhaseSubmitted
	w.state.Reference = sub.Reference
	w.state.Values = model.Values{}
	w.cancelTimerLocked()
	w.seq++
	seq := w.seq
	o.event(Event{Kind: EventSubmitted, Reference: sub.Reference})
	o.note(notify.LevelSuccess, submittedMessage(w.messages.Submitted, sub.Reference))
	w.mu.Unlock()

	w.clear(seq)
	w.logger.Info("form submitted", zap.String("submission", sub.ID), zap.String("reference", sub.Reference))
	w.deliver(&o)
	return sub, nil
}

func submittedMessage(format, ref string) string {
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, ref)
	}
	return format
}
