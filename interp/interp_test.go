package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dodecaplex/beflux/interp"
)

// load builds an interpreter with program 0 loaded from src (one line
// per grid row) and stdout bound to a buffer, returning both.
func load(t *testing.T, src string) (*interp.Interpreter, *bytes.Buffer) {
	t.Helper()
	p := interp.New()
	require.NoError(t, p.Bank.Load(0, strings.NewReader(src)))
	out := &bytes.Buffer{}
	p.Streams.Out = out
	return p, out
}

func TestScenarioHelloWorld(t *testing.T) {
	p, out := load(t, `"Hello, world!"o Q`)
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(0), status)
	assert.Equal(t, "Hello, world!", out.String())
}

func TestScenarioArithmeticPrint(t *testing.T) {
	p, out := load(t, `41012+.Q`)
	_, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, "42", out.String())
}

func TestScenarioExitStatus(t *testing.T) {
	p, _ := load(t, `01q`)
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(1), status)
}

func TestScenarioDivideByZeroIsFatal(t *testing.T) {
	p, _ := load(t, `0100/Q`)
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), status)
}

func TestScenarioStringReversePuts(t *testing.T) {
	p, out := load(t, `"ABC"r,,,Q`)
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(0), status)
	assert.Equal(t, "ABC", out.String())
}

func TestScenarioLoopTerminates(t *testing.T) {
	// Push 03, then loop printing and decrementing until zero: `_` sends
	// a nonzero count west into the v and back round the second row, and
	// a zero count east into Q.
	p, _ := load(t, `03>:   #v_Q`+"\n"+`  ^-10.:<`)
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(0), status)
}

func TestUndefinedOpcodeIsFatal(t *testing.T) {
	p, _ := load(t, "\x01Q")
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), status, "invariant I5: an unbound byte in Normal mode must halt fatally")
}

func TestStackUnderflowReturnsZeroNotFatal(t *testing.T) {
	p, out := load(t, `.Q`)
	status, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, byte(0), status)
	assert.Equal(t, "00", out.String())
}

func TestStringModeRoundTripsEscapes(t *testing.T) {
	p, out := load(t, `"a\n"oo Q`)
	_, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, "a\n", out.String())
}

func TestQuitLeavesInterpreterHalted(t *testing.T) {
	p, _ := load(t, `Q`)
	_, err := p.Run()
	require.NoError(t, err)
	assert.True(t, p.Halted())
}

func TestFreedInterpreterRefusesRun(t *testing.T) {
	p, _ := load(t, `Q`)
	p.Free()
	_, err := p.Run()
	assert.Error(t, err)
}

func TestStepSingleTicksAdvanceIP(t *testing.T) {
	p, _ := load(t, `>>>Q`)
	require.NoError(t, p.Step())
	assert.Equal(t, byte(1), p.IP.Col)
	require.NoError(t, p.Step())
	assert.Equal(t, byte(2), p.IP.Col)
}

func TestWrapOffsetShiftsRowOnHorizontalWrap(t *testing.T) {
	p, _ := load(t, `Q`)
	p.IP.WrapOffset = 5
	p.IP.Col = 0xFF
	p.IP.Advance()
	assert.Equal(t, byte(5), p.IP.Row)
	assert.Equal(t, byte(0), p.IP.Col)
}
