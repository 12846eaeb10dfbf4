package wizard

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/persistence"
)

// Restore resumes a saved session. It must run before any interaction and
// at most once. Missing, expired or corrupt data leaves the wizard at step 1
// with no values; expired and corrupt blobs are removed from the store.
// Restored values are trusted and not re-validated. The boolean reports
// whether a session was resumed.
func (w *Wizard) Restore(ctx context.Context) (bool, error) {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return false, err
	}
	if w.interacted || w.restored {
		w.mu.Unlock()
		return false, ErrRestoreTooLate
	}
	w.restored = true

	blob, err := persistence.Load(ctx, w.store, w.key, w.clock.Now())
	if err != nil {
		w.mu.Unlock()
		switch {
		case errors.Is(err, persistence.ErrNotFound):
		case errors.Is(err, persistence.ErrExpired):
			w.logger.Info("discarded expired saved data", zap.String("key", w.key))
		case errors.Is(err, persistence.ErrCorrupt):
			w.logger.Warn("discarded corrupt saved data", zap.String("key", w.key), zap.Error(err))
		default:
			w.logger.Warn("reading saved data failed", zap.String("key", w.key), zap.Error(err))
		}
		return false, nil
	}

	var o outbox
	w.state.Values = blob.Values.Clone()
	w.state.CurrentStep = clampStep(blob.Step, w.state.TotalSteps)
	w.state.LastSavedAt = blob.SavedAt()
	if w.state.CurrentStep == w.state.TotalSteps {
		w.summaryUpdatedLocked(&o)
	}
	w.stepShownLocked(&o)
	o.note(notify.LevelInfo, w.messages.Restored)
	w.mu.Unlock()

	w.logger.Debug("restored saved data", zap.String("key", w.key), zap.Int("step", blob.Step))
	w.deliver(&o)
	return true, nil
}
