package engine

import "fmt"

// ActionKind discriminates the semantic inputs the engine understands.
type ActionKind int

const (
	ActionDigit ActionKind = iota
	ActionDecimal
	ActionOperator
	ActionEquals
	ActionClear
	ActionToggleSign
	ActionPercent
	ActionBackspace
)

func (k ActionKind) String() string {
	switch k {
	case ActionDigit:
		return "digit"
	case ActionDecimal:
		return "decimal"
	case ActionOperator:
		return "operator"
	case ActionEquals:
		return "equals"
	case ActionClear:
		return "clear"
	case ActionToggleSign:
		return "toggle-sign"
	case ActionPercent:
		return "percent"
	case ActionBackspace:
		return "backspace"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one semantic input delivered by an input adapter. Digit is set
// only for ActionDigit and Operator only for ActionOperator.
type Action struct {
	Kind     ActionKind
	Digit    byte
	Operator Operator
}

// Digit returns the action for a digit character '0'..'9'.
func Digit(d byte) Action { return Action{Kind: ActionDigit, Digit: d} }

// SetOperator returns the action selecting op.
func SetOperator(op Operator) Action { return Action{Kind: ActionOperator, Operator: op} }

var (
	Decimal    = Action{Kind: ActionDecimal}
	Equals     = Action{Kind: ActionEquals}
	Clear      = Action{Kind: ActionClear}
	ToggleSign = Action{Kind: ActionToggleSign}
	Percent    = Action{Kind: ActionPercent}
	Backspace  = Action{Kind: ActionBackspace}
)

// Name is a short label used in logs and telemetry, e.g. "digit", "add".
func (a Action) Name() string {
	if a.Kind == ActionOperator {
		return a.Operator.String()
	}
	return a.Kind.String()
}
