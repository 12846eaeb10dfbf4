package wizard

import (
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// OnFieldEdit records a keystroke-level edit. The field is validated live
// and an auto-save is scheduled once input has been idle for the debounce
// window.
func (w *Wizard) OnFieldEdit(name, value string) (validation.Result, error) {
	return w.setField(name, value, false)
}

// OnFieldCommit records a change event (blur, selection). It validates the
// field, saves immediately and republishes the summary when the field feeds
// the price calculation.
func (w *Wizard) OnFieldCommit(name, value string) (validation.Result, error) {
	return w.setField(name, value, true)
}

func (w *Wizard) setField(name, value string, commit bool) (validation.Result, error) {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return validation.Result{}, err
	}
	field, ok := w.def.Field(name)
	if !ok {
		w.mu.Unlock()
		return validation.Result{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	w.interacted = true
	w.state.Values[name] = value

	var o outbox
	res := w.validator.Validate(field, value, w.clock.Now())
	kind := EventFieldValid
	if !res.Valid {
		kind = EventFieldInvalid
	}
	o.event(Event{Kind: kind, Field: name, Result: res})

	if commit {
		w.cancelTimerLocked()
		o.save = w.snapshotLocked()
		if _, feeds := w.inputs[name]; feeds {
			w.summaryUpdatedLocked(&o)
		}
	} else {
		w.armLocked()
	}
	w.mu.Unlock()

	w.deliver(&o)
	return res, nil
}

// Advance validates the current step and moves forward when it passes. The
// returned issues are nil on success. Entering the final step republishes
// the summary before the step is shown. Advancing from the final step only
// validates it.
func (w *Wizard) Advance() ([]validation.Issue, error) {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.interacted = true

	var o outbox
	current := w.state.CurrentStep
	step, _ := w.def.StepAt(current)
	issues := w.validator.ValidateStep(step, w.state.Values, w.clock.Now())
	if len(issues) > 0 {
		w.issuesLocked(&o, issues)
		w.mu.Unlock()
		w.deliver(&o)
		return issues, nil
	}

	total := w.state.TotalSteps
	if current >= total {
		w.mu.Unlock()
		return nil, nil
	}

	w.state.CurrentStep = current + 1
	if w.state.CurrentStep == total {
		w.summaryUpdatedLocked(&o)
	}
	w.stepShownLocked(&o)
	o.note(notify.LevelSuccess, w.messages.StepAdvanced)
	w.cancelTimerLocked()
	o.save = w.snapshotLocked()
	w.mu.Unlock()

	w.deliver(&o)
	return nil, nil
}

// Retreat moves back one step without validating. Step 1 stays at step 1.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.interacted = true

	var o outbox
	w.state.CurrentStep = clampStep(w.state.CurrentStep-1, w.state.TotalSteps)
	w.stepShownLocked(&o)
	w.cancelTimerLocked()
	o.save = w.snapshotLocked()
	w.mu.Unlock()

	w.deliver(&o)
	return nil
}

// CurrentStep returns the 1-indexed step and its definition.
func (w *Wizard) CurrentStep() (int, model.Step) {
	w.mu.Lock()
	defer w.mu.Unlock()
	step, _ := w.def.StepAt(w.state.CurrentStep)
	return w.state.CurrentStep, step
}

func clampStep(step, total int) int {
	if step < 1 {
		return 1
	}
	if step > total {
		return total
	}
	return step
}
