package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorded collects calculations reported by an engine.
type recorded struct {
	calcs []Calculation
}

func (r *recorded) Record(c Calculation) { r.calcs = append(r.calcs, c) }

func newTestEngine() (*Engine, *recorded) {
	rec := &recorded{}
	return New(rec), rec
}

func press(e *Engine, actions ...Action) Snapshot {
	var s Snapshot
	for _, a := range actions {
		s = e.Apply(a)
	}
	return s
}

func digits(s string) []Action {
	out := make([]Action, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, Decimal)
			continue
		}
		out = append(out, Digit(s[i]))
	}
	return out
}

func TestNewStartsAtInitialState(t *testing.T) {
	e := New(nil)

	assert.Equal(t, State{Current: "0"}, e.State())
	assert.Equal(t, Display{Value: "0"}, e.Display())
}

func TestClearAlwaysRestoresInitialState(t *testing.T) {
	sequences := map[string][]Action{
		"mid entry":        digits("12.5"),
		"pending operator": append(digits("7"), SetOperator(Multiply)),
		"after result":     append(digits("7"), SetOperator(Add), Digit('1'), Equals),
		"negative":         append(digits("3"), ToggleSign),
	}

	for name, actions := range sequences {
		t.Run(name, func(t *testing.T) {
			e, _ := newTestEngine()
			press(e, actions...)

			e.Clear()

			assert.Equal(t, State{Current: "0"}, e.State())
		})
	}
}

func TestInputDigitOrPoint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "leading zero replaced", input: "07", want: "7"},
		{name: "zeros collapse", input: "000", want: "0"},
		{name: "decimal after zero", input: "0.5", want: "0.5"},
		{name: "point first keeps zero", input: ".5", want: "0.5"},
		{name: "duplicate point rejected", input: "1.2.3", want: "1.23"},
		{name: "many digits", input: "1234567890", want: "1234567890"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine()
			s := press(e, digits(tc.input)...)
			assert.Equal(t, tc.want, s.Current)
		})
	}
}

func TestInputNeverProducesTwoDecimalPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const alphabet = "0123456789."

	for i := 0; i < 500; i++ {
		e, _ := newTestEngine()
		n := 1 + rng.Intn(20)
		for j := 0; j < n; j++ {
			tok := string(alphabet[rng.Intn(len(alphabet))])
			s := e.InputDigitOrPoint(tok)
			require.LessOrEqual(t, strings.Count(s.Current, "."), 1, "value %q", s.Current)
		}
	}
}

// A bare "." after an operator is kept as typed, not normalised to "0.".
func TestFreshInputAcceptsBarePoint(t *testing.T) {
	e, rec := newTestEngine()

	s := press(e, Digit('5'), SetOperator(Add), Decimal)
	assert.Equal(t, ".", s.Current)

	s = press(e, Digit('5'), Equals)
	assert.Equal(t, "5.5", s.Current)
	require.Len(t, rec.calcs, 1)
	assert.Equal(t, "5 + 0.5", rec.calcs[0].Expression())
}

// Leading-zero suppression only applies to a plain "0", so a "-0" left by
// backspace keeps its zero when the next digit arrives.
func TestNegativeZeroKeepsLeadingZero(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, append(digits("0.5"), ToggleSign, Backspace, Backspace)...)
	assert.Equal(t, "-0", s.Current)

	s = press(e, Digit('5'))
	assert.Equal(t, "-05", s.Current)
	assert.Equal(t, -5.0, ParseNumber(s.Current))
}

// Editing an exponent-form value can leave a literal that only parses by
// prefix. The numeric value stays finite.
func TestEditingExponentFormParsesByPrefix(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, append(digits("0.00000001"), ToggleSign, ToggleSign, Decimal)...)
	assert.Equal(t, "1e-8.", s.Current)
	assert.Equal(t, 1e-8, ParseNumber(s.Current))

	s = press(e, Backspace, Backspace)
	assert.Equal(t, "1e-", s.Current)
	assert.Equal(t, 1.0, ParseNumber(s.Current))
}

func TestAddScenarioRecordsHistory(t *testing.T) {
	e, rec := newTestEngine()

	s := press(e, Digit('5'), SetOperator(Add), Digit('3'), Equals)

	assert.Equal(t, "8", s.Current)
	assert.Empty(t, s.Previous)
	assert.Equal(t, None, s.Pending)
	assert.True(t, e.State().AwaitingFreshInput)

	require.Len(t, rec.calcs, 1)
	assert.Equal(t, "5 + 3", rec.calcs[0].Expression())
	assert.Equal(t, 8.0, rec.calcs[0].Result)
}

func TestDivideByZeroYieldsZero(t *testing.T) {
	e, rec := newTestEngine()

	s := press(e, Digit('6'), SetOperator(Divide), Digit('0'), Equals)

	assert.Equal(t, "0", s.Current)
	require.Len(t, rec.calcs, 1)
	assert.Equal(t, "6 ÷ 0", rec.calcs[0].Expression())
	assert.Equal(t, 0.0, rec.calcs[0].Result)
}

func TestToggleSignTwiceRestoresValue(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, Digit('9'), ToggleSign)
	assert.Equal(t, "-9", s.Current)

	s = e.ToggleSign()
	assert.Equal(t, "9", s.Current)
}

func TestToggleSignOfZeroStaysZero(t *testing.T) {
	e, _ := newTestEngine()
	assert.Equal(t, "0", e.ToggleSign().Current)
}

func TestToggleSignKeepsEntryMode(t *testing.T) {
	e, _ := newTestEngine()

	press(e, Digit('4'), ToggleSign, Digit('2'))

	assert.Equal(t, "-42", e.State().Current)
}

func TestChainedOperatorsCommitLeftToRight(t *testing.T) {
	e, rec := newTestEngine()

	s := press(e, Digit('2'), SetOperator(Add), Digit('3'), SetOperator(Multiply))
	assert.Equal(t, "5", s.Previous)
	assert.Equal(t, "5", s.Current)
	assert.Equal(t, Multiply, s.Pending)
	assert.Equal(t, Display{Value: "5", Equation: "5 ×"}, s.Display())

	s = press(e, Digit('4'), Equals)
	assert.Equal(t, "20", s.Current)

	require.Len(t, rec.calcs, 2)
	assert.Equal(t, "2 + 3", rec.calcs[0].Expression())
	assert.Equal(t, 5.0, rec.calcs[0].Result)
	assert.Equal(t, "5 × 4", rec.calcs[1].Expression())
	assert.Equal(t, 20.0, rec.calcs[1].Result)
}

func TestSetOperatorTwiceOverwritesOperator(t *testing.T) {
	e, rec := newTestEngine()

	first := press(e, Digit('8'), SetOperator(Add))
	second := e.SetOperator(Subtract)

	assert.Equal(t, first.Current, second.Current)
	assert.Equal(t, first.Previous, second.Previous)
	assert.Equal(t, Subtract, second.Pending)
	assert.Empty(t, rec.calcs)

	s := press(e, Digit('3'), Equals)
	assert.Equal(t, "5", s.Current)
}

func TestSetOperatorIgnoresNonBinaryOperators(t *testing.T) {
	for _, op := range []Operator{None, Operator(9), Operator(-1)} {
		t.Run(op.String(), func(t *testing.T) {
			e, rec := newTestEngine()

			s := press(e, Digit('5'), SetOperator(op))
			assert.Equal(t, Snapshot{Current: "5"}, s)
			assert.False(t, e.State().AwaitingFreshInput)

			assert.NotPanics(t, func() { press(e, Digit('2'), Equals) })
			assert.Equal(t, "52", e.State().Current)
			assert.Empty(t, rec.calcs)
		})
	}
}

func TestSetOperatorInvalidKeepsPendingOperation(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, Digit('4'), SetOperator(Multiply), Digit('2'), SetOperator(None))

	assert.Equal(t, Snapshot{Current: "2", Previous: "4", Pending: Multiply}, s)
	assert.Equal(t, "8", press(e, Equals).Current)
}

func TestCalculateTwiceIsNoOp(t *testing.T) {
	e, rec := newTestEngine()

	press(e, Digit('4'), SetOperator(Multiply), Digit('2'), Equals)
	before := e.State()

	e.Calculate()

	assert.Equal(t, before, e.State())
	assert.Len(t, rec.calcs, 1)
}

func TestCalculateWithoutOperatorIsNoOp(t *testing.T) {
	e, rec := newTestEngine()

	press(e, Digit('4'), Equals)

	assert.Equal(t, State{Current: "4"}, e.State())
	assert.Empty(t, rec.calcs)
}

func TestEqualsRightAfterOperatorIsNoOp(t *testing.T) {
	e, rec := newTestEngine()

	s := press(e, Digit('4'), SetOperator(Divide), Equals)

	assert.Equal(t, Divide, s.Pending)
	assert.Equal(t, "4", s.Previous)
	assert.Empty(t, rec.calcs)
}

func TestDigitAfterResultStartsNewNumber(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, Digit('1'), SetOperator(Add), Digit('1'), Equals, Digit('7'))

	assert.Equal(t, "7", s.Current)
	assert.False(t, e.State().AwaitingFreshInput)
}

func TestPercent(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, Digit('5'), Digit('0'), Percent)
	assert.Equal(t, "0.5", s.Current)

	s = e.Percent()
	assert.Equal(t, "0.005", s.Current)
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    string
	}{
		{name: "after clear", actions: []Action{Clear, Backspace}, want: "0"},
		{name: "drops last digit", actions: append(digits("123"), Backspace), want: "12"},
		{name: "single digit", actions: append(digits("5"), Backspace), want: "0"},
		{name: "drops point", actions: append(digits("1."), Backspace), want: "1"},
		{name: "lone sign", actions: append(digits("7"), ToggleSign, Backspace), want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine()
			s := press(e, tc.actions...)
			assert.Equal(t, tc.want, s.Current)
		})
	}
}

func TestLoadValueKeepsPendingOperator(t *testing.T) {
	e, rec := newTestEngine()

	press(e, Digit('1'), Digit('0'), SetOperator(Subtract))
	s := e.LoadValue(2.5)

	assert.Equal(t, "2.5", s.Current)
	assert.Equal(t, Subtract, s.Pending)
	assert.Equal(t, "10", s.Previous)
	assert.True(t, e.State().AwaitingFreshInput)

	// The loaded value is not an operand until something new is entered.
	e.Calculate()
	assert.Empty(t, rec.calcs)
}

func TestLoadValueThenDigitReplaces(t *testing.T) {
	e, _ := newTestEngine()

	e.LoadValue(42)
	s := e.InputDigitOrPoint("3")

	assert.Equal(t, "3", s.Current)
}

func TestFloatResultsUseShortestForm(t *testing.T) {
	e, _ := newTestEngine()

	s := press(e, append(append(digits("0.1"), SetOperator(Add)), append(digits("0.2"), Equals)...)...)

	assert.Equal(t, "0.30000000000000004", s.Current)
}

func TestOverflowIsCoercedToZero(t *testing.T) {
	e, rec := newTestEngine()

	e.LoadValue(1e308)
	press(e, SetOperator(Multiply), Digit('1'), Digit('0'), Equals)

	assert.Equal(t, "0", e.State().Current)
	require.Len(t, rec.calcs, 1)
	assert.Equal(t, 0.0, rec.calcs[0].Result)
}

func TestPendingNoneImpliesEmptyPrevious(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []Action{
		Digit('0'), Digit('1'), Digit('5'), Digit('9'), Decimal,
		SetOperator(Add), SetOperator(Subtract), SetOperator(Multiply), SetOperator(Divide),
		Equals, Clear, ToggleSign, Percent, Backspace,
	}

	e, _ := newTestEngine()
	for i := 0; i < 2000; i++ {
		s := e.Apply(pool[rng.Intn(len(pool))])
		if s.Pending == None {
			require.Empty(t, s.Previous, "step %d", i)
		}
		require.NotEmpty(t, s.Current, "step %d", i)
		require.LessOrEqual(t, strings.Count(s.Current, "."), 1, "step %d", i)
	}
}
