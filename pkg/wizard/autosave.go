package wizard

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/persistence"
)

// snapshot is a blob queued for writing. seq orders snapshots so a slow
// write never overwrites a newer one.
type snapshot struct {
	seq  uint64
	blob persistence.Blob
}

func (w *Wizard) snapshotLocked() *snapshot {
	w.seq++
	return &snapshot{
		seq:  w.seq,
		blob: persistence.NewBlob(w.state.Values, w.state.CurrentStep, w.clock.Now()),
	}
}

// armLocked (re)starts the debounce timer. Only the last edit in the window
// produces a write.
func (w *Wizard) armLocked() {
	w.cancelTimerLocked()
	gen := w.timerGen
	w.timer = w.clock.AfterFunc(w.debounce, func() { w.flushPending(gen) })
}

func (w *Wizard) cancelTimerLocked() {
	w.timerGen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Wizard) flushPending(gen uint64) {
	w.mu.Lock()
	if gen != w.timerGen || w.closed || w.state.Phase == PhaseSubmitted {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.write(*snap)
}

// write persists snap. Failures are logged and never change the state.
func (w *Wizard) write(snap snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSaveTimeout)
	defer cancel()

	w.saveMu.Lock()
	if snap.seq <= w.lastWritten {
		w.saveMu.Unlock()
		return
	}
	err := persistence.Save(ctx, w.store, w.key, snap.blob)
	if err == nil {
		w.lastWritten = snap.seq
	}
	w.saveMu.Unlock()

	if err != nil {
		w.logger.Warn("auto-save failed", zap.String("key", w.key), zap.Error(err))
		return
	}

	savedAt := snap.blob.SavedAt()
	w.mu.Lock()
	if savedAt.After(w.state.LastSavedAt) {
		w.state.LastSavedAt = savedAt
	}
	w.mu.Unlock()

	w.logger.Debug("auto-saved", zap.String("key", w.key), zap.Int("step", snap.blob.Step))
	w.deliver(&outbox{events: []Event{{Kind: EventSaved, SavedAt: savedAt}}})
}

// clear removes the saved blob and discards every queued snapshot.
func (w *Wizard) clear(seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSaveTimeout)
	defer cancel()

	w.saveMu.Lock()
	defer w.saveMu.Unlock()
	if seq > w.lastWritten {
		w.lastWritten = seq
	}
	if err := w.store.Delete(ctx, w.key); err != nil {
		w.logger.Warn("clearing saved data failed", zap.String("key", w.key), zap.Error(err))
	}
}
