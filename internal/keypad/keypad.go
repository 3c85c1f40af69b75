// Package keypad translates raw keyboard keys and on-screen button names
// into engine actions.
package keypad

import "go-chi-calculator/internal/engine"

var buttons = map[string]engine.Action{
	"decimal":     engine.Decimal,
	"add":         engine.SetOperator(engine.Add),
	"subtract":    engine.SetOperator(engine.Subtract),
	"multiply":    engine.SetOperator(engine.Multiply),
	"divide":      engine.SetOperator(engine.Divide),
	"equals":      engine.Equals,
	"clear":       engine.Clear,
	"toggle-sign": engine.ToggleSign,
	"percent":     engine.Percent,
	"backspace":   engine.Backspace,
}

var keys = map[string]engine.Action{
	".":         engine.Decimal,
	"+":         engine.SetOperator(engine.Add),
	"-":         engine.SetOperator(engine.Subtract),
	"*":         engine.SetOperator(engine.Multiply),
	"/":         engine.SetOperator(engine.Divide),
	"Enter":     engine.Equals,
	"=":         engine.Equals,
	"Backspace": engine.Backspace,
	"Escape":    engine.Clear,
}

// Keys whose browser default (quick find, form submit, navigation) must be
// suppressed when they drive the calculator.
var preventDefault = map[string]struct{}{
	"*":         {},
	"/":         {},
	"Enter":     {},
	"=":         {},
	"Backspace": {},
}

// FromKey maps a KeyboardEvent key name to an action.
func FromKey(key string) (engine.Action, bool) {
	if d, ok := digit(key); ok {
		return engine.Digit(d), true
	}
	a, ok := keys[key]
	return a, ok
}

// PreventsDefault reports whether the adapter must cancel the browser's
// default handling of key.
func PreventsDefault(key string) bool {
	_, ok := preventDefault[key]
	return ok
}

// FromButton maps a button name ("7", "add", "toggle-sign", ...) to an action.
func FromButton(name string) (engine.Action, bool) {
	if d, ok := digit(name); ok {
		return engine.Digit(d), true
	}
	a, ok := buttons[name]
	return a, ok
}

func digit(s string) (byte, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return s[0], true
}
