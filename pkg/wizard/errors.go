package wizard

import "errors"

var (
	// ErrNotFinalStep is returned by Submit before the last step is reached.
	ErrNotFinalStep = errors.New("wizard: submit is only allowed from the final step")
	// ErrSubmitInProgress is returned by every mutating call while a
	// submission is waiting on the submitter.
	ErrSubmitInProgress = errors.New("wizard: submission already in progress")
	// ErrAlreadySubmitted is returned by every mutating call after a
	// successful submission.
	ErrAlreadySubmitted = errors.New("wizard: form already submitted")
	// ErrIncomplete is returned by Submit when the final step does not
	// validate. The individual issues are delivered as events.
	ErrIncomplete = errors.New("wizard: final step is incomplete")
	// ErrRestoreTooLate is returned by Restore once the user interacted
	// with the wizard or a restore already ran.
	ErrRestoreTooLate = errors.New("wizard: restore must run before any interaction")
	// ErrUnknownField is returned for edits to fields the definition does
	// not declare.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("wizard: closed")
)
