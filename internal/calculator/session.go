package calculator

import (
	"context"
	"errors"
	"sync"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"

	"go.uber.org/zap"
)

// ErrEntryNotFound is returned when a history index does not exist.
var ErrEntryNotFound = errors.New("history entry not found")

// Outcome is the result of dispatching one action.
type Outcome struct {
	Display engine.Display
	// Calculation and Entry are set when the action completed a calculation.
	Calculation *engine.Calculation
	Entry       *history.Entry
}

// Panel is the history panel as a renderer sees it.
type Panel struct {
	Visible bool
	Entries []history.Entry
}

// Session is one calculator: an engine, its history ledger and the history
// panel state. Every method holds the session lock for its whole duration,
// so events are processed one at a time and in order.
type Session struct {
	mu           sync.Mutex
	engine       *engine.Engine
	ledger       *history.Ledger
	logger       *zap.Logger
	panelVisible bool

	// calculations completed by the engine during the current event
	completed []engine.Calculation
}

// NewSession wraps an already loaded ledger.
func NewSession(ledger *history.Ledger, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{ledger: ledger, logger: logger}
	s.engine = engine.New(engine.RecorderFunc(func(c engine.Calculation) {
		s.completed = append(s.completed, c)
	}))
	historyEntries.Set(float64(ledger.Len()))
	return s
}

// Dispatch applies an action and records any calculation it completed. A
// failure to persist history is logged and counted; the entry stays in the
// in-memory ledger and is written with the next successful save.
func (s *Session) Dispatch(ctx context.Context, a engine.Action) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Outcome{Display: s.engine.Apply(a).Display()}

	for _, c := range s.completed {
		entry, err := s.ledger.Record(ctx, c.Expression(), c.Result)
		if err != nil {
			historyPersistFailures.Inc()
			s.logger.Error("persisting history failed",
				zap.String("expression", entry.Expression),
				zap.Error(err),
			)
		}
		out.Calculation = &c
		out.Entry = &entry
	}
	s.completed = s.completed[:0]

	historyEntries.Set(float64(s.ledger.Len()))
	return out
}

// Display returns the current display without changing anything.
func (s *Session) Display() engine.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Display()
}

// History returns the panel visibility and the ledger, newest first.
func (s *Session) History() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Panel{Visible: s.panelVisible, Entries: s.ledger.Entries()}
}

// TogglePanel shows or hides the history panel. Showing it returns a fresh
// snapshot of the ledger to render.
func (s *Session) TogglePanel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.panelVisible = !s.panelVisible
	p := Panel{Visible: s.panelVisible}
	if p.Visible {
		p.Entries = s.ledger.Entries()
	}
	return p
}

// UseEntry loads the result of history entry index into the display and
// hides the panel.
func (s *Session) UseEntry(index int) (engine.Display, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.ledger.At(index)
	if !ok {
		return engine.Display{}, ErrEntryNotFound
	}

	d := s.engine.LoadValue(entry.Result).Display()
	s.panelVisible = false
	return d, nil
}

// ClearHistory empties the ledger.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.Clear(ctx)
	historyEntries.Set(float64(s.ledger.Len()))
	if err != nil {
		historyPersistFailures.Inc()
		return err
	}
	return nil
}
