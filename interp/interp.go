// Package interp wires the Beflux primitives (word, stack, bank, ip,
// mode, frames, diag) into the interpreter core: the opcode dispatcher,
// the 256-entry opcode table, and the run loop described in the
// component design.
package interp

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Dodecaplex/beflux/bank"
	"github.com/Dodecaplex/beflux/diag"
	"github.com/Dodecaplex/beflux/frames"
	"github.com/Dodecaplex/beflux/hostio"
	"github.com/Dodecaplex/beflux/ip"
	"github.com/Dodecaplex/beflux/mode"
	"github.com/Dodecaplex/beflux/stack"
	"github.com/Dodecaplex/beflux/word"
)

// Interpreter is one Beflux machine: a program bank, a frame bank, an
// instruction pointer, mode state, registers, bound streams, and the
// counters and bindings the opcode catalogue reads and mutates.
type Interpreter struct {
	Bank     *bank.Bank
	Program  word.Word // current_program
	Provider bank.Provider

	Frames *frames.Bank
	IP     ip.IP
	Mode   mode.Mode
	Accum  mode.Accumulator

	// Ops is this interpreter's byte->operation table, seeded from
	// DefaultTable. A host may override any entry directly on its own
	// Interpreter without affecting any other instance.
	Ops *OpTable

	Registers [word.Width]word.Word

	Streams *hostio.Streams
	Diag    diag.Emitter

	Status    word.Word
	TMajor    word.Word
	TMinor    word.Word
	LoopCount word.Word
	Tick      uint64

	Rand *rand.Rand

	// FTable and MTable are the host extension points. FTable is
	// addressed by the F opcode; MTable is reached only through
	// InvokeMath, since M is the frame-clear opcode (see DESIGN.md).
	FTable [word.Width]func(p *Interpreter, idx word.Word)
	MTable [word.Width]func(p *Interpreter, idx word.Word)

	// PreHook and PostHook run around every tick's evaluate/advance
	// step, matching the run loop's pre_update/post_update hooks.
	PreHook  func(p *Interpreter)
	PostHook func(p *Interpreter)

	// Timeout bounds total wall-clock run time; zero means unbounded.
	Timeout time.Duration

	sleepReq time.Duration
	runStart time.Time
}

// New returns a freshly constructed interpreter: empty grids, empty
// stacks, IP at (0,0,E,wait=0), mode Halt, stdio-bound streams, and the
// built-in math table (identity, sine, cosine) installed.
func New() *Interpreter {
	ops := DefaultTable
	p := &Interpreter{
		Bank:    bank.New(),
		Frames:  &frames.Bank{},
		Mode:    mode.Halt,
		Streams: hostio.Default(),
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Ops:     &ops,
	}
	p.Diag = diag.Emitter{Out: p.Streams.Err, Name: func(op word.Word) string {
		return OpName(p.Ops, op)
	}}
	installDefaultMathTable(p)
	return p
}

// Free releases all held streams and transitions to Freed; further Run
// calls on a Freed interpreter fail.
func (p *Interpreter) Free() {
	p.Streams.Close()
	p.Mode = mode.Freed
}

// Run executes the bound program until mode becomes Halt, following the
// run loop's eight-step sequence, and returns the final status.
func (p *Interpreter) Run() (word.Word, error) {
	switch p.Mode {
	case mode.Freed:
		return 0, errors.New("Interpreter has already been freed.")
	case mode.Halt:
	default:
		return 0, errors.New("Bad interpreter mode.")
	}
	for !p.Halted() {
		if err := p.Step(); err != nil {
			return p.Status, err
		}
	}
	return p.Status, nil
}

// Step executes exactly one run-loop tick: pre-hook, fetch/evaluate,
// advance, tick++, post-hook, sleep/timeout. Run calls it in a loop;
// the interactive debugger calls it once per keypress. The first call
// on a Halt-mode interpreter transitions it to Normal, per invariant
// I3.
func (p *Interpreter) Step() error {
	switch p.Mode {
	case mode.Freed:
		return errors.New("Interpreter has already been freed.")
	case mode.Halt:
		p.Mode = mode.Normal
		p.runStart = time.Now()
	}
	if p.Mode == mode.Halt {
		return nil
	}

	if p.PreHook != nil {
		p.PreHook(p)
	}

	op := p.IP.CurrentOp(p.Bank.Grid(p.Program))
	p.eval(op)
	if p.Mode == mode.Halt {
		return nil
	}

	p.IP.Advance()
	p.Tick++
	postTick := time.Now()

	if p.PostHook != nil {
		p.PostHook(p)
	}

	if p.sleepReq > 0 {
		elapsed := time.Since(postTick)
		if remaining := p.sleepReq - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
		p.sleepReq = 0
	}
	if p.Timeout > 0 && time.Since(p.runStart) > p.Timeout {
		p.fatal("Program timeout.")
	}
	return nil
}

// Halted reports whether the interpreter's mode is Halt.
func (p *Interpreter) Halted() bool {
	return p.Mode == mode.Halt
}

// eval routes one fetched byte through the mode controller: Normal
// dispatches it, String pushes or switches to StringEscape, and
// StringEscape resolves the escape and returns to String.
func (p *Interpreter) eval(b word.Word) {
	switch p.Mode {
	case mode.Normal:
		p.dispatch(b)
	case mode.String:
		switch b {
		case '"':
			p.Mode = mode.Normal
		case '\\':
			p.Mode = mode.StringEscape
		default:
			p.push(b)
		}
	case mode.StringEscape:
		p.push(mode.Escape(b))
		p.Mode = mode.String
	}
}

func (p *Interpreter) dispatch(b word.Word) {
	op := p.Ops[b]
	if op == nil {
		p.fatal("Undefined opcode.")
		return
	}
	op.Fn(p)
}

func (p *Interpreter) push(v word.Word) {
	p.pushTo(p.Frames.Current(), v)
}

func (p *Interpreter) pop() word.Word {
	return p.Frames.Current().Pop()
}

func (p *Interpreter) top() word.Word {
	return p.Frames.Current().Top()
}

func (p *Interpreter) pushTo(s *stack.Stack, v word.Word) {
	if err := s.Push(v); err != nil {
		p.fatal("Stack overflow.")
	}
}

func (p *Interpreter) currentOpByte() word.Word {
	return p.Bank.Grid(p.Program).Get(p.IP.Row, p.IP.Col)
}

func (p *Interpreter) fatal(msg string) {
	p.Diag.Emit(diag.Error, msg, p.currentOpByte(), p.Program, p.IP.Row, p.IP.Col)
	p.Status = 0xFF
	p.Mode = mode.Halt
}

func (p *Interpreter) warn(msg string) {
	p.Diag.Emit(diag.Warning, msg, p.currentOpByte(), p.Program, p.IP.Row, p.IP.Col)
}

// Note emits a note-level diagnostic. Unlike warning and error, no
// opcode triggers a note on its own; it exists for host and extension
// code (pre/post hooks, F-table bindings) to report non-fatal context.
func (p *Interpreter) Note(msg string) {
	p.Diag.Emit(diag.Note, msg, p.currentOpByte(), p.Program, p.IP.Row, p.IP.Col)
}

// Save writes program prog out via the bound provider under name. No
// printable opcode triggers this directly; it is exposed for host and
// extension use, mirroring the historical loader's save half.
func (p *Interpreter) Save(prog word.Word, name string) error {
	if p.Provider == nil {
		return errors.New("no program provider bound")
	}
	w, err := p.Provider.Save(name)
	if err != nil {
		return err
	}
	defer w.Close()
	return p.Bank.Save(prog, w)
}

// Load reads name via the bound provider into program prog, the same
// path the P opcode uses.
func (p *Interpreter) Load(prog word.Word, name string) error {
	if p.Provider == nil {
		return errors.New("no program provider bound")
	}
	r, err := p.Provider.Load(name)
	if err != nil {
		return err
	}
	defer r.Close()
	return p.Bank.Load(prog, r)
}
