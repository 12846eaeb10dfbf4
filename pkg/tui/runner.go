package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/summary"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type action int

const (
	actionNext action = iota
	actionBack
	actionSubmit
)

// Runner walks a wizard step by step in the terminal. Build the wizard with
// wizard.WithSink(runner.Sink()) so its notifications are printed between
// prompts.
type Runner struct {
	driver    PromptDriver
	theme     Theme
	labels    Labels
	summaries *summary.Renderer
	notes     *notify.Recorder
}

// New constructs a runner with defaults (survey driver, Arabic captions).
func New(options ...Option) (*Runner, error) {
	r := &Runner{
		theme:  DefaultTheme(),
		labels: DefaultLabels(),
		notes:  &notify.Recorder{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.summaries == nil {
		renderer, err := summary.NewRenderer()
		if err != nil {
			return nil, err
		}
		r.summaries = renderer
	}
	return r, nil
}

// Sink returns the notification sink that feeds the runner's output.
func (r *Runner) Sink() notify.Sink {
	return r.notes
}

// Run prompts until the form is submitted or the user gives up. Pending
// notifications, such as the one emitted by a prior Restore, are printed
// first.
func (r *Runner) Run(ctx context.Context, w *wizard.Wizard) (wizard.Submission, error) {
	if ctx == nil {
		return wizard.Submission{}, errors.New("tui: context is required")
	}
	if w == nil {
		return wizard.Submission{}, errors.New("tui: wizard is nil")
	}

	for {
		if err := ctx.Err(); err != nil {
			return wizard.Submission{}, err
		}
		if err := r.flush(ctx); err != nil {
			return wizard.Submission{}, err
		}

		current, step := w.CurrentStep()
		total := w.Definition().TotalSteps()
		if err := r.driver.Info(ctx, stepHeader(current, total, step.Title)); err != nil {
			return wizard.Submission{}, err
		}
		for _, field := range step.Fields {
			if err := r.promptField(ctx, w, field); err != nil {
				return wizard.Submission{}, err
			}
		}
		if current == total {
			if err := r.showSummary(ctx, w); err != nil {
				return wizard.Submission{}, err
			}
		}

		next, err := r.chooseAction(ctx, current, total)
		if err != nil {
			return wizard.Submission{}, err
		}
		switch next {
		case actionBack:
			if err := w.Retreat(); err != nil {
				return wizard.Submission{}, err
			}
		case actionNext:
			if _, err := w.Advance(); err != nil {
				return wizard.Submission{}, err
			}
		case actionSubmit:
			sub, done, err := r.submit(ctx, w)
			if err != nil || done {
				return sub, err
			}
		}
	}
}

// submit keeps retrying while the submitter fails and the user agrees. done
// is false when the final step needs more input.
func (r *Runner) submit(ctx context.Context, w *wizard.Wizard) (wizard.Submission, bool, error) {
	for {
		sub, err := w.Submit(ctx)
		if err == nil {
			return sub, true, r.flush(ctx)
		}
		if errors.Is(err, wizard.ErrIncomplete) {
			return wizard.Submission{}, false, nil
		}
		if !errors.Is(err, wizard.ErrSubmitInProgress) {
			if flushErr := r.flush(ctx); flushErr != nil {
				return wizard.Submission{}, true, flushErr
			}
		}

		retry, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{Message: r.labels.Retry, Default: true})
		if confirmErr != nil {
			return wizard.Submission{}, true, confirmErr
		}
		if !retry {
			return wizard.Submission{}, true, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
	}
}

func (r *Runner) promptField(ctx context.Context, w *wizard.Wizard, field model.FieldSpec) error {
	current := w.State().Values.Get(field.Name)
	for {
		value, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}
		res, err := w.OnFieldCommit(field.Name, value)
		if err != nil {
			return err
		}
		if err := r.flush(ctx); err != nil {
			return err
		}
		if res.Valid {
			return nil
		}
		msg := r.theme.ErrorPrefix + field.DisplayLabel() + ": " + res.Message
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
		current = value
	}
}

func (r *Runner) ask(ctx context.Context, field model.FieldSpec, current string) (string, error) {
	message := field.DisplayLabel()
	if field.Required {
		message += " *"
	}

	switch field.Kind {
	case model.FieldKindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current != "" && current != "false",
			Help:    field.Help,
		})
		if err != nil {
			return "", err
		}
		if checked {
			return "on", nil
		}
		return "", nil
	case model.FieldKindRadio, model.FieldKindSelect:
		if len(field.Options) == 0 {
			// free-form choice lists are typed in
			return r.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: field.Help})
		}
		options := make([]string, 0, len(field.Options))
		defaultIdx := 0
		for idx, opt := range field.Options {
			options = append(options, field.OptionLabel(opt.Value))
			if opt.Value == current {
				defaultIdx = idx
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil
	case model.FieldKindTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: current,
			Help:    field.Help,
		})
	default:
		help := field.Help
		if help == "" {
			help = field.Placeholder
		}
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current,
			Help:    help,
		})
	}
}

func (r *Runner) chooseAction(ctx context.Context, current, total int) (action, error) {
	actions := []action{actionNext}
	options := []string{r.labels.Next}
	if current == total {
		actions[0] = actionSubmit
		options[0] = r.labels.Submit
	}
	if current > 1 {
		actions = append(actions, actionBack)
		options = append(options, r.labels.Back)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Options: options, Message: stepHeader(current, total, "")})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(actions) {
		return actions[0], nil
	}
	return actions[idx], nil
}

func (r *Runner) showSummary(ctx context.Context, w *wizard.Wizard) error {
	text, err := r.summaries.Definition(w.Definition(), w.Summary())
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, strings.TrimRight(text, "\n"))
}

func (r *Runner) flush(ctx context.Context) error {
	for _, n := range r.notes.Drain() {
		if err := r.driver.Info(ctx, r.theme.prefix(n.Level)+n.Message); err != nil {
			return err
		}
	}
	return nil
}

func stepHeader(current, total int, title string) string {
	header := fmt.Sprintf("[%d/%d]", current, total)
	if title != "" {
		header += " " + title
	}
	return header
}
