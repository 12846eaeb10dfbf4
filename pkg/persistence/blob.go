package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// MaxAge is how long a saved blob stays restorable.
const MaxAge = 24 * time.Hour

var (
	// ErrExpired is returned by Load for blobs older than MaxAge.
	ErrExpired = errors.New("persistence: saved data expired")
	// ErrCorrupt is returned by Load and Decode for unparseable blobs.
	ErrCorrupt = errors.New("persistence: saved data is corrupt")
)

// Blob is the auto-save snapshot written under a definition's storage key.
type Blob struct {
	Values    model.Values `json:"values"`
	Step      int          `json:"step"`
	Timestamp int64        `json:"timestamp"`
}

// NewBlob snapshots values and step at now.
func NewBlob(values model.Values, step int, now time.Time) Blob {
	return Blob{
		Values:    values.Clone(),
		Step:      step,
		Timestamp: now.UnixMilli(),
	}
}

// SavedAt returns the timestamp as a time.
func (b Blob) SavedAt() time.Time {
	return time.UnixMilli(b.Timestamp)
}

// Expired reports whether the blob is older than MaxAge at now.
func (b Blob) Expired(now time.Time) bool {
	return now.UnixMilli()-b.Timestamp > MaxAge.Milliseconds()
}

// UnmarshalJSON also accepts the older {"data": ...} layout.
func (b *Blob) UnmarshalJSON(data []byte) error {
	var raw struct {
		Values    model.Values `json:"values"`
		Data      model.Values `json:"data"`
		Step      int          `json:"step"`
		Timestamp int64        `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Values = raw.Values
	if b.Values == nil {
		b.Values = raw.Data
	}
	b.Step = raw.Step
	b.Timestamp = raw.Timestamp
	return nil
}

// Encode serialises b.
func Encode(b Blob) (string, error) {
	if b.Values == nil {
		b.Values = model.Values{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("persistence: encode blob: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored blob. Blobs that do not parse or lack a timestamp
// wrap ErrCorrupt.
func Decode(raw string) (Blob, error) {
	var b Blob
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return Blob{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if b.Timestamp <= 0 {
		return Blob{}, fmt.Errorf("%w: missing timestamp", ErrCorrupt)
	}
	if b.Values == nil {
		b.Values = model.Values{}
	}
	return b, nil
}

// Save encodes b and writes it under key.
func Save(ctx context.Context, store Store, key string, b Blob) error {
	encoded, err := Encode(b)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, encoded)
}

// Load reads the blob under key. Expired and corrupt blobs are deleted and
// reported as ErrExpired or ErrCorrupt; a missing key reports ErrNotFound.
func Load(ctx context.Context, store Store, key string, now time.Time) (Blob, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return Blob{}, err
	}

	b, err := Decode(raw)
	if err != nil {
		if delErr := store.Delete(ctx, key); delErr != nil {
			return Blob{}, errors.Join(err, delErr)
		}
		return Blob{}, err
	}

	if b.Expired(now) {
		if delErr := store.Delete(ctx, key); delErr != nil {
			return Blob{}, errors.Join(ErrExpired, delErr)
		}
		return Blob{}, ErrExpired
	}
	return b, nil
}
