// Package diag implements the Beflux diagnostic emitter: note, warning,
// and error records written to an error channel, naming the opcode and
// its (program, row, col) location.
package diag

import (
	"fmt"
	"io"

	"github.com/Dodecaplex/beflux/word"
)

// Level is a diagnostic's severity.
type Level int

const (
	Note Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Note:
		return "Note"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// OpName names an opcode byte for diagnostics. It is injected by the
// interp package rather than imported directly, to keep diag free of a
// dependency on the opcode table.
type OpName func(op word.Word) string

// Emitter writes leveled diagnostics to Out, formatted to name the
// opcode, its printable form, and the (program,row,col) triple in hex:
//
//	<Level>: <opname> (op<hex>='<char>') at <prog><row><col>
//	  <message>
type Emitter struct {
	Out  io.Writer
	Name OpName
}

func printable(b word.Word) byte {
	if b >= 0x20 && b < 0x7F {
		return b
	}
	return '.'
}

// Emit writes one diagnostic record. A nil Out discards the record
// silently, matching a host that never bound an error stream.
func (e *Emitter) Emit(level Level, msg string, op, prog, row, col word.Word) {
	if e.Out == nil {
		return
	}
	name := "?"
	if e.Name != nil {
		name = e.Name(op)
	}
	fmt.Fprintf(e.Out, "%s: %s (op%02x='%c') at %02x%02x%02x\n  %s\n\n",
		level, name, op, printable(op), prog, row, col, msg)
}
