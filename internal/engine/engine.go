// Package engine implements the running calculator: a stack-less state
// machine that turns digit, operator and editing inputs into a display value.
// Operators chain strictly left to right; there is no precedence.
package engine

import "strings"

// State is the complete calculator state. The zero value is not valid; use
// New or Engine.Clear.
type State struct {
	Current            string
	Previous           string
	Pending            Operator
	AwaitingFreshInput bool
}

// Snapshot is the read-only view returned after every operation.
type Snapshot struct {
	Current  string
	Previous string
	Pending  Operator
}

// Display is what a renderer draws: the main value and the equation line.
type Display struct {
	Value    string `json:"value"`
	Equation string `json:"equation"`
}

// Display derives the renderer view. The equation line is empty when no
// operator is pending.
func (s Snapshot) Display() Display {
	d := Display{Value: s.Current}
	if s.Pending != None {
		d.Equation = s.Previous + " " + s.Pending.Symbol()
	}
	return d
}

// Calculation describes one completed binary operation.
type Calculation struct {
	Left     float64
	Operator Operator
	Right    float64
	Result   float64
}

// Expression renders "<left> <symbol> <right>" with canonical operands.
func (c Calculation) Expression() string {
	return FormatNumber(c.Left) + " " + c.Operator.Symbol() + " " + FormatNumber(c.Right)
}

// Recorder is notified of every completed calculation.
type Recorder interface {
	Record(Calculation)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Calculation)

func (f RecorderFunc) Record(c Calculation) { f(c) }

// Engine owns one calculator state. It is not safe for concurrent use;
// callers serialise events.
type Engine struct {
	state    State
	recorder Recorder
}

// New returns an engine in its initial state. recorder may be nil.
func New(recorder Recorder) *Engine {
	e := &Engine{recorder: recorder}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.state = State{Current: "0"}
}

// State returns a copy of the full state.
func (e *Engine) State() State { return e.state }

// Snapshot returns the current read-only view.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Current:  e.state.Current,
		Previous: e.state.Previous,
		Pending:  e.state.Pending,
	}
}

// Display is shorthand for Snapshot().Display().
func (e *Engine) Display() Display { return e.Snapshot().Display() }

// Apply dispatches a semantic action to the matching operation.
func (e *Engine) Apply(a Action) Snapshot {
	switch a.Kind {
	case ActionDigit:
		return e.InputDigitOrPoint(string(a.Digit))
	case ActionDecimal:
		return e.InputDigitOrPoint(".")
	case ActionOperator:
		return e.SetOperator(a.Operator)
	case ActionEquals:
		return e.Calculate()
	case ActionClear:
		return e.Clear()
	case ActionToggleSign:
		return e.ToggleSign()
	case ActionPercent:
		return e.Percent()
	case ActionBackspace:
		return e.Backspace()
	}
	return e.Snapshot()
}

// InputDigitOrPoint enters a single digit or ".". After an operator or a
// result the token starts a new number, even when it is a bare ".".
func (e *Engine) InputDigitOrPoint(token string) Snapshot {
	s := &e.state
	switch {
	case s.AwaitingFreshInput:
		s.Current = token
		s.AwaitingFreshInput = false
	case s.Current == "0" && token != ".":
		s.Current = token
	case token == "." && strings.Contains(s.Current, "."):
		// only one decimal point per number
	default:
		s.Current += token
	}
	return e.Snapshot()
}

// SetOperator selects op. A pending operation is committed first, so
// "2 + 3 ×" evaluates 2+3 before recording ×. Pressing operators back to
// back only replaces the pending one. Anything other than the four binary
// operators is ignored.
func (e *Engine) SetOperator(op Operator) Snapshot {
	if !op.Valid() {
		return e.Snapshot()
	}
	if e.state.Pending != None {
		e.Calculate()
	}
	e.state.Previous = e.state.Current
	e.state.Pending = op
	e.state.AwaitingFreshInput = true
	return e.Snapshot()
}

// Calculate applies the pending operator to Previous and Current. It does
// nothing when no operator is pending or no second operand was entered.
func (e *Engine) Calculate() Snapshot {
	s := &e.state
	if s.Pending == None || s.AwaitingFreshInput {
		return e.Snapshot()
	}

	c := Calculation{
		Left:     ParseNumber(s.Previous),
		Operator: s.Pending,
		Right:    ParseNumber(s.Current),
	}
	c.Result = finite(c.Operator.apply(c.Left, c.Right))

	if e.recorder != nil {
		e.recorder.Record(c)
	}

	s.Current = FormatNumber(c.Result)
	s.Pending = None
	s.Previous = ""
	s.AwaitingFreshInput = true
	return e.Snapshot()
}

// Clear restores the initial state.
func (e *Engine) Clear() Snapshot {
	e.reset()
	return e.Snapshot()
}

// ToggleSign negates the current value.
func (e *Engine) ToggleSign() Snapshot {
	e.state.Current = FormatNumber(-ParseNumber(e.state.Current))
	return e.Snapshot()
}

// Percent divides the current value by 100.
func (e *Engine) Percent() Snapshot {
	e.state.Current = FormatNumber(ParseNumber(e.state.Current) / 100)
	return e.Snapshot()
}

// Backspace removes the last character of the current value. The value
// falls back to "0" instead of becoming empty or a lone sign.
func (e *Engine) Backspace() Snapshot {
	cur := e.state.Current
	if cur != "" {
		cur = cur[:len(cur)-1]
	}
	if cur == "" || cur == "-" {
		cur = "0"
	}
	e.state.Current = cur
	return e.Snapshot()
}

// LoadValue replaces the current value with v, typically a result picked
// from history. Any pending operator is kept, so a stored result can be used
// as the second operand.
func (e *Engine) LoadValue(v float64) Snapshot {
	e.state.Current = FormatNumber(v)
	e.state.AwaitingFreshInput = true
	return e.Snapshot()
}
