package interp

import (
	"fmt"

	"github.com/Dodecaplex/beflux/word"
)

// Op is one entry in the 256-byte opcode table: a diagnostic name and
// the state mutation it performs.
type Op struct {
	Name string
	Fn   func(p *Interpreter)
}

// OpTable is a byte->operation table. nil means undefined, which is
// fatal in Normal mode per invariant I5.
type OpTable [word.Width]*Op

// DefaultTable is the built-in byte->operation table installed in
// every freshly constructed Interpreter. It is a shared, read-only
// template: a host overrides entries on its own Interpreter's Ops
// field (see New), never on DefaultTable itself, so bindings stay
// per-instance as SPEC_FULL.md §2.9/§5/§6 require, matching
// bfx->op_bindings in the original source rather than a single
// process-wide table.
var DefaultTable OpTable

// OpName names an opcode byte against table t for diagnostics, falling
// back to a hex OPxx label for bytes with no bound operation, matching
// the historical opname table's treatment of the undefined ranges.
func OpName(t *OpTable, op word.Word) string {
	if t != nil && t[op] != nil {
		return t[op].Name
	}
	return fmt.Sprintf("OP%02x", op)
}

func reg(b byte, name string, fn func(p *Interpreter)) {
	DefaultTable[b] = &Op{Name: name, Fn: fn}
}
