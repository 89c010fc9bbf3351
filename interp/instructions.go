package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/Dodecaplex/beflux/ip"
	"github.com/Dodecaplex/beflux/mode"
	"github.com/Dodecaplex/beflux/trig"
	"github.com/Dodecaplex/beflux/word"
)

func durationSeconds(seconds word.Word) time.Duration {
	return time.Duration(seconds) * time.Second
}

// scanLimit bounds non-halting scans (SKIP, comment, block): one row
// when wrapping is off, the whole grid when it is on, per §7.
func (p *Interpreter) scanLimit() int {
	if p.IP.WrapOffset != 0 {
		return word.Width * word.Width
	}
	return word.Width
}

func (p *Interpreter) peekNext(g *word.Grid) word.Word {
	row, col := p.IP.Row, p.IP.Col
	switch p.IP.Dir {
	case ip.East:
		col++
	case ip.West:
		col--
	case ip.North:
		row--
	case ip.South:
		row++
	}
	return g.Get(row, col)
}

// popString pops bytes until a 0 sentinel (which is also consumed),
// returning them in their original push order.
func (p *Interpreter) popString() string {
	var buf []byte
	for {
		b := p.pop()
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func hexNibble(b byte) (word.Word, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// --- Control / direction -----------------------------------------------

func opSkip(p *Interpreter) {
	limit := p.scanLimit()
	g := p.Bank.Grid(p.Program)
	for count := 0; p.peekNext(g) == ' '; count++ {
		if count > limit {
			p.fatal("Infinite space scan.")
			return
		}
		p.IP.Advance()
	}
}

func opHop(p *Interpreter)        { p.IP.Advance() }
func opDirWest(p *Interpreter)    { p.IP.Dir = ip.West }
func opDirEast(p *Interpreter)    { p.IP.Dir = ip.East }
func opDirNorth(p *Interpreter)   { p.IP.Dir = ip.North }
func opDirSouth(p *Interpreter)   { p.IP.Dir = ip.South }
func opTurnLeft(p *Interpreter)   { p.IP.Dir = p.IP.Dir.Left() }
func opTurnRight(p *Interpreter)  { p.IP.Dir = p.IP.Dir.Right() }
func opTurnReverse(p *Interpreter) { p.IP.Dir = p.IP.Dir.Reverse() }

var cardinals = [4]ip.Direction{ip.East, ip.North, ip.West, ip.South}

func opAway(p *Interpreter) { p.IP.Dir = cardinals[p.Rand.Intn(4)] }

func opHorizIf(p *Interpreter) {
	if p.pop() != 0 {
		p.IP.Dir = ip.West
	} else {
		p.IP.Dir = ip.East
	}
}

func opVertIf(p *Interpreter) {
	if p.pop() != 0 {
		p.IP.Dir = ip.North
	} else {
		p.IP.Dir = ip.South
	}
}

func opNorthIf(p *Interpreter) {
	if p.pop() != 0 {
		p.IP.Dir = ip.North
	}
}

func opSouthIf(p *Interpreter) {
	if p.pop() != 0 {
		p.IP.Dir = ip.South
	}
}

func opRep(p *Interpreter) {
	p.IP.Reset()
	p.IP.Wait = 1
	p.TMinor++
}

func haltWith(p *Interpreter, status word.Word) {
	p.IP.Reset()
	p.Status = status
	p.TMinor = 0
	p.TMajor++
	p.Mode = mode.Halt
}

func opQuit(p *Interpreter) { haltWith(p, 0) }

func opExit(p *Interpreter) {
	status := p.pop()
	if status != 0 {
		p.warn(fmt.Sprintf("Exited with status %02x.", status))
	}
	haltWith(p, status)
}

func opJump(p *Interpreter) {
	col := p.pop()
	row := p.pop()
	p.IP.Jump(row, col)
}

func opCall(p *Interpreter) {
	p.pushTo(&p.Frames.CallsRow, p.IP.Row)
	p.pushTo(&p.Frames.CallsCol, p.IP.Col)
	opJump(p)
}

func opReturn(p *Interpreter) {
	col := p.Frames.CallsCol.Pop()
	row := p.Frames.CallsRow.Pop()
	p.IP.Jump(row, col)
	p.IP.Advance()
}

func opJrel(p *Interpreter) {
	dx := p.pop()
	dy := p.pop()
	orig := p.IP.Dir
	p.IP.Dir = ip.East
	for i := word.Word(0); i < dx; i++ {
		p.IP.Advance()
	}
	p.IP.Dir = ip.South
	for i := word.Word(0); i < dy; i++ {
		p.IP.Advance()
	}
	p.IP.Dir = orig
	p.IP.Wait = 1
}

func opIter(p *Interpreter) {
	p.IP.Advance()
	p.IP.Wait = p.pop()
}

func opBumpNorth(p *Interpreter) {
	p.IP.Row--
	p.IP.Wait = 1
}

func opBumpSouth(p *Interpreter) {
	p.IP.Row++
	p.IP.Wait = 1
}

// --- Stack / values ------------------------------------------------------

func opNot(p *Interpreter) {
	if p.pop() == 0 {
		p.push(1)
	} else {
		p.push(0)
	}
}

func opDrop(p *Interpreter) { p.pop() }

func opDup(p *Interpreter) { p.push(p.top()) }

func opSwap(p *Interpreter) {
	a := p.pop()
	b := p.pop()
	p.push(a)
	p.push(b)
}

func opOver(p *Interpreter) {
	a := p.pop()
	b := p.top()
	p.push(a)
	p.push(b)
}

func opFramePush(p *Interpreter)       { p.Frames.Push() }
func opFramePop(p *Interpreter)        { p.Frames.Pop() }
func opClearFrame(p *Interpreter)      { p.Frames.ClearCurrent() }
func opClearFramesDown(p *Interpreter) { p.Frames.ClearDown() }
func opFrameDup(p *Interpreter)        { p.Frames.Dup() }

func digitOp(nibble word.Word) func(p *Interpreter) {
	return func(p *Interpreter) {
		if v, ok := p.Accum.Feed(nibble); ok {
			p.push(v)
		}
	}
}

// --- Arithmetic / compare --------------------------------------------------

func opAdd(p *Interpreter) {
	a := p.pop()
	b := p.pop()
	p.push(a + b)
}

func opMul(p *Interpreter) {
	a := p.pop()
	b := p.pop()
	p.push(a * b)
}

func opSub(p *Interpreter) {
	b := p.pop()
	a := p.pop()
	p.push(a - b)
}

func opDiv(p *Interpreter) {
	b := p.pop()
	a := p.pop()
	if b == 0 {
		p.fatal("Zero denominator.")
		return
	}
	p.push(a / b)
}

func opMod(p *Interpreter) {
	b := p.pop()
	a := p.pop()
	if b == 0 {
		p.fatal("Zero denominator.")
		return
	}
	p.push(a % b)
}

func opEq(p *Interpreter) {
	a := p.pop()
	b := p.pop()
	if a == b {
		p.push(1)
	} else {
		p.push(0)
	}
}

func opGt(p *Interpreter) {
	b := p.pop()
	a := p.pop()
	if a > b {
		p.push(1)
	} else {
		p.push(0)
	}
}

// --- I/O -------------------------------------------------------------------

func opPutc(p *Interpreter) {
	v := p.pop()
	if p.Streams.Out == nil {
		p.fatal("No output file.")
		return
	}
	if _, err := p.Streams.Out.Write([]byte{v}); err != nil {
		p.fatal("Output write failed.")
	}
}

func opPutx(p *Interpreter) {
	v := p.pop()
	if p.Streams.Out == nil {
		p.fatal("No output file.")
		return
	}
	fmt.Fprintf(p.Streams.Out, "%02x", v)
}

func opNewline(p *Interpreter) {
	p.push('\n')
	opPutc(p)
}

func opGetc(p *Interpreter) {
	if p.Streams.In == nil {
		p.fatal("No input file.")
		return
	}
	var buf [1]byte
	n, err := p.Streams.In.Read(buf[:])
	if n == 0 {
		if err == io.EOF {
			p.push(0xFF)
			return
		}
		p.fatal("Input read failed.")
		return
	}
	p.push(buf[0])
}

// opGetx reads exactly one byte from input and feeds it to the digit
// accumulator if it is a hex digit; a non-hex byte is read and
// discarded (ignored, not skipped past), matching bfx_op26's single
// fgetc per invocation.
func opGetx(p *Interpreter) {
	if p.Streams.In == nil {
		p.fatal("No input file.")
		return
	}
	var buf [1]byte
	n, err := p.Streams.In.Read(buf[:])
	if n == 0 {
		if err == io.EOF {
			p.fatal("EOF on required read.")
			return
		}
		p.fatal("Input read failed.")
		return
	}
	nib, ok := hexNibble(buf[0])
	if !ok {
		return
	}
	if v, done := p.Accum.Feed(nib); done {
		p.push(v)
	}
}

func opEOF(p *Interpreter) {
	if p.Streams.In == nil {
		p.push(0xFF)
		return
	}
	if peeker, ok := p.Streams.In.(interface{ Peek(int) ([]byte, error) }); ok {
		if _, err := peeker.Peek(1); err != nil {
			p.push(1)
			return
		}
		p.push(0)
		return
	}
	p.push(0)
}

func opInputSelect(p *Interpreter) {
	switch p.top() {
	case 0x00:
		p.pop()
		p.Streams.DetachInput()
	case 0xFF:
		p.pop()
		p.Streams.BindStdin()
	default:
		name := p.popString()
		if err := p.Streams.BindInputFile(name); err != nil {
			p.fatal("Cannot open input file.")
		}
	}
}

func opOutputSelect(p *Interpreter) {
	switch p.top() {
	case 0x00:
		p.pop()
		p.Streams.DetachOutput()
	case 0xFF:
		p.pop()
		p.Streams.BindStdout()
	default:
		name := p.popString()
		if err := p.Streams.BindOutputFile(name); err != nil {
			p.fatal("Cannot open output file.")
		}
	}
}

func opReverse(p *Interpreter) {
	var buf []word.Word
	for {
		v := p.pop()
		if v == 0 {
			break
		}
		buf = append(buf, v)
	}
	p.push(0)
	for _, v := range buf {
		p.push(v)
	}
}

func opPuts(p *Interpreter) {
	opReverse(p)
	for {
		v := p.pop()
		if v == 0 {
			break
		}
		if p.Streams.Out == nil {
			p.fatal("No output file.")
			return
		}
		p.Streams.Out.Write([]byte{v})
	}
}

func opGets(p *Interpreter) {
	p.push(0)
	for {
		if p.Streams.In == nil {
			p.fatal("No input file.")
			return
		}
		var buf [1]byte
		n, err := p.Streams.In.Read(buf[:])
		if n == 0 {
			break
		}
		b := buf[0]
		if b == '\n' || b == 0 {
			break
		}
		p.push(b)
		if err != nil {
			break
		}
	}
}

func opJoin(p *Interpreter) {
	var tmp []word.Word
	for {
		v := p.pop()
		if v == 0 {
			break
		}
		tmp = append(tmp, v)
	}
	for i := len(tmp) - 1; i >= 0; i-- {
		p.push(tmp[i])
	}
}

// --- Grid manipulation -------------------------------------------------------

func opGridGet(p *Interpreter) {
	col := p.pop()
	row := p.pop()
	prog := p.pop()
	p.push(p.Bank.Get(prog, row, col))
}

func opGridSet(p *Interpreter) {
	col := p.pop()
	row := p.pop()
	prog := p.pop()
	value := p.pop()
	p.Bank.Set(prog, row, col, value)
}

func opLoad(p *Interpreter) {
	prog := p.pop()
	name := p.popString()
	if err := p.Load(prog, name); err != nil {
		p.fatal("Cannot load program.")
	}
}

func opLoopReset(p *Interpreter) { p.LoopCount = 0 }

func opLoopPush(p *Interpreter) {
	p.push(p.LoopCount)
	p.LoopCount++
}

func opWrap(p *Interpreter) { p.IP.WrapOffset = p.pop() }

func opCurProg(p *Interpreter)  { p.push(p.Program) }
func opHomeProg(p *Interpreter) { p.Program = 0 }
func opNextProg(p *Interpreter) { p.Program++ }
func opPrevProg(p *Interpreter) { p.Program-- }

func opExecProg(p *Interpreter) {
	opJump(p)
	p.Program = p.pop()
}

// --- Registers ---------------------------------------------------------------

func opRegGet(p *Interpreter) {
	idx := p.pop()
	p.push(p.Registers[idx])
}

func opRegSet(p *Interpreter) {
	idx := p.pop()
	v := p.pop()
	p.Registers[idx] = v
}

func opRegSwap(p *Interpreter) {
	idx := p.pop()
	v := p.pop()
	old := p.Registers[idx]
	p.Registers[idx] = v
	p.push(old)
}

func opRegClear(p *Interpreter) {
	for i := range p.Registers {
		p.Registers[i] = 0
	}
}

// --- Randomness / time ---------------------------------------------------------

func opRand(p *Interpreter) { p.push(word.Word(p.Rand.Intn(256))) }

func opDice(p *Interpreter) {
	maxV := p.pop()
	minV := p.pop()
	if maxV <= minV {
		p.fatal("Invalid dice range.")
		return
	}
	span := int(maxV) - int(minV)
	p.push(minV + word.Word(p.Rand.Intn(span)))
}

func opTMajor(p *Interpreter) { p.push(p.TMajor) }
func opTMinor(p *Interpreter) { p.push(p.TMinor) }

// --- Block / meta --------------------------------------------------------------

func opComment(p *Interpreter) {
	limit := p.scanLimit()
	g := p.Bank.Grid(p.Program)
	p.IP.Advance()
	for count := 0; p.IP.CurrentOp(g) != ';'; count++ {
		if count > limit {
			p.fatal("Infinite comment scan.")
			return
		}
		p.IP.Advance()
	}
}

func opBlockOpen(p *Interpreter) {
	if p.pop() != 0 {
		return
	}
	limit := p.scanLimit()
	g := p.Bank.Grid(p.Program)
	depth := 1
	for count := 0; depth > 0; count++ {
		if count > limit {
			p.fatal("Infinite block loop detected.")
			return
		}
		p.IP.Advance()
		switch p.IP.CurrentOp(g) {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
}

func opBlockEnd(p *Interpreter) {}

func opExec(p *Interpreter) { p.eval(p.pop()) }

func opFunc(p *Interpreter) {
	idx := p.pop()
	if fn := p.FTable[idx]; fn != nil {
		fn(p, idx)
	}
}

// InvokeMath calls the math-function binding at idx, pushing its result
// as a (positive, negative) word pair. Index 0 is identity, 1 sine,
// 2 cosine; a host may install further bindings. No printable opcode
// reaches this directly; see DESIGN.md for why it is host/API-only.
func (p *Interpreter) InvokeMath(idx word.Word) {
	if fn := p.MTable[idx]; fn != nil {
		fn(p, idx)
	}
}

func installDefaultMathTable(p *Interpreter) {
	p.MTable[0] = func(p *Interpreter, _ word.Word) {
		v := p.pop()
		p.push(v)
		p.push(0)
	}
	p.MTable[1] = func(p *Interpreter, _ word.Word) {
		angle := p.pop()
		pos, neg := trig.Split(trig.SinBAM(angle))
		p.push(pos)
		p.push(neg)
	}
	p.MTable[2] = func(p *Interpreter, _ word.Word) {
		angle := p.pop()
		pos, neg := trig.Split(trig.CosBAM(angle))
		p.push(pos)
		p.push(neg)
	}
}

func opWait(p *Interpreter) {
	seconds := p.pop()
	p.Streams.Flush()
	p.sleepReq = durationSeconds(seconds)
}

func opEnterString(p *Interpreter) {
	p.push(0)
	p.Mode = mode.String
}

func opNop(p *Interpreter) {}

// --- Table registration ------------------------------------------------------

func init() {
	reg(' ', "SKIP", opSkip)
	reg('!', "NOT", opNot)
	reg('"', "STR", opEnterString)
	reg('#', "HOP", opHop)
	reg('$', "POP", opDrop)
	reg('%', "MOD", opMod)
	reg('&', "GETX", opGetx)
	reg('\'', "OVER", opOver)
	reg('(', "PSHF", opFramePush)
	reg(')', "POPF", opFramePop)
	reg('*', "MUL", opMul)
	reg('+', "ADD", opAdd)
	reg(',', "PUTC", opPutc)
	reg('-', "SUB", opSub)
	reg('.', "PUTX", opPutx)
	reg('/', "DIV", opDiv)

	for d := word.Word(0); d <= 9; d++ {
		reg('0'+d, "DIGIT", digitOp(d))
	}

	reg(':', "DUP", opDup)
	reg(';', "COM", opComment)
	reg('<', "MVW", opDirWest)
	reg('=', "EQ", opEq)
	reg('>', "MVE", opDirEast)
	reg('?', "AWAY", opAway)
	reg('@', "REP", opRep)

	reg('A', "PRVP", opPrevProg)
	reg('B', "REV", opTurnReverse)
	reg('C', "CALL", opCall)
	reg('D', "DICE", opDice)
	reg('E', "EOF", opEOF)
	reg('F', "FUNC", opFunc)
	reg('G', "GETG", opGridGet)
	reg('H', "HOME", opHomeProg)
	reg('I', "FIN", opInputSelect)
	reg('J', "JUMP", opJump)
	reg('K', "DUPF", opFrameDup)
	reg('L', "LEND", opLoopReset)
	reg('M', "CLRS", opClearFramesDown)
	reg('N', "CLRF", opClearFrame)
	reg('O', "FOUT", opOutputSelect)
	reg('P', "LOAD", opLoad)
	reg('Q', "QUIT", opQuit)
	reg('R', "RET", opReturn)
	reg('S', "SETG", opGridSet)
	reg('T', "TMAJ", opTMajor)
	reg('U', "CURP", opCurProg)
	reg('V', "NXTP", opNextProg)
	reg('W', "WRAP", opWrap)
	reg('X', "EXEP", opExecProg)
	reg('Y', "CLRR", opRegClear)
	reg('Z', "RAND", opRand)

	reg('[', "TRNL", opTurnLeft)
	reg('\\', "SWP", opSwap)
	reg(']', "TRNR", opTurnRight)
	reg('^', "MVN", opDirNorth)
	reg('_', "WEIF", opHorizIf)
	reg('`', "GT", opGt)

	for d := word.Word(0); d <= 5; d++ {
		reg('a'+d, "DIGIT", digitOp(10+d))
	}

	reg('g', "GETR", opRegGet)
	reg('h', "BMPN", opBumpNorth)
	reg('i', "GETS", opGets)
	reg('j', "JREL", opJrel)
	reg('k', "ITER", opIter)
	reg('l', "LOOP", opLoopPush)
	reg('m', "NIF", opNorthIf)
	reg('n', "ENDL", opNewline)
	reg('o', "PUTS", opPuts)
	reg('p', "SWPR", opRegSwap)
	reg('q', "EXIT", opExit)
	reg('r', "REVS", opReverse)
	reg('s', "SETR", opRegSet)
	reg('t', "TMIN", opTMinor)
	reg('u', "JOIN", opJoin)
	reg('v', "MVS", opDirSouth)
	reg('w', "SIF", opSouthIf)
	reg('x', "EXEC", opExec)
	reg('y', "BMPS", opBumpSouth)
	reg('z', "WAIT", opWait)

	reg('{', "BLK", opBlockOpen)
	reg('|', "NSIF", opVertIf)
	reg('}', "BEND", opBlockEnd)
	reg('~', "GETC", opGetc)
	reg(0x7F, "DEL", opNop)
}
