package engine

import "fmt"

// Operator is a binary operation waiting for its second operand.
// The zero value None means no operation is pending.
type Operator int

const (
	None Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

// Valid reports whether op is one of the four binary operators.
func (op Operator) Valid() bool { return op >= Add && op <= Divide }

// Symbol returns the operator as rendered on the display and in history.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	}
	return ""
}

// String implements fmt.Stringer with the lower-case operation name, which is
// also the name used for metric and span attributes.
func (op Operator) String() string {
	switch op {
	case None:
		return "none"
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// apply computes a <op> b. Division by zero yields 0 rather than an error.
func (op Operator) apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		if b == 0 {
			return 0
		}
		return a / b
	}
	panic(fmt.Sprintf("engine: apply called with %v", op))
}
