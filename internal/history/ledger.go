// Package history keeps the newest-first ledger of completed calculations and
// persists it as a single JSON document in a key/value store.
package history

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// StorageKey is the store key the ledger is saved under.
const StorageKey = "calculatorHistory"

// TimeLayout formats RecordedAt as a time of day, e.g. "3:04:05 PM".
const TimeLayout = "3:04:05 PM"

// Option configures a Ledger.
type Option func(*Ledger)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *Ledger) { l.key = key }
}

// WithClock sets the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger sets the logger used to report discarded or unreadable history.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// Ledger is the ordered list of history entries, newest first. The full list
// is written back to the store after every change. A Ledger is not safe for
// concurrent use.
type Ledger struct {
	store   Store
	key     string
	now     func() time.Time
	logger  *zap.Logger
	entries []Entry
}

// NewLedger returns an empty ledger backed by store. Call Load to restore
// previously persisted entries.
func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		key:    StorageKey,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory entries with the persisted ones. Missing,
// unreadable or malformed content leaves the ledger empty; the problem is
// logged and never returned.
func (l *Ledger) Load(ctx context.Context) {
	l.entries = nil

	payload, ok, err := l.store.Get(ctx, l.key)
	if err != nil {
		l.logger.Warn("reading history failed",
			zap.String("key", l.key),
			zap.Error(err),
		)
		return
	}
	if !ok {
		return
	}

	entries, err := decodeEntries(payload)
	if err != nil {
		l.logger.Warn("discarding malformed history",
			zap.String("key", l.key),
			zap.Int("bytes", len(payload)),
			zap.Error(err),
		)
		return
	}

	l.entries = entries
	l.logger.Debug("history loaded", zap.Int("entries", len(entries)))
}

// Record stamps a new entry with the current time of day and appends it.
func (l *Ledger) Record(ctx context.Context, expression string, result float64) (Entry, error) {
	e := Entry{
		Expression: expression,
		Result:     result,
		RecordedAt: l.now().Format(TimeLayout),
	}
	return e, l.Append(ctx, e)
}

// Append inserts e at the head of the ledger and persists the whole list.
// The entry stays in memory even when persisting fails.
func (l *Ledger) Append(ctx context.Context, e Entry) error {
	entries := make([]Entry, 0, len(l.entries)+1)
	entries = append(entries, e)
	l.entries = append(entries, l.entries...)
	return l.Persist(ctx)
}

// Clear removes every entry and persists the empty list.
func (l *Ledger) Clear(ctx context.Context) error {
	l.entries = nil
	return l.Persist(ctx)
}

// Persist writes the full ordered list under the ledger key, replacing
// whatever was stored before.
func (l *Ledger) Persist(ctx context.Context) error {
	payload, err := encodeEntries(l.entries)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, l.key, payload); err != nil {
		return fmt.Errorf("persisting history under %q: %w", l.key, err)
	}
	return nil
}

// Entries returns a copy of the ledger, newest first.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// At returns the entry at index i, where 0 is the newest.
func (l *Ledger) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}
