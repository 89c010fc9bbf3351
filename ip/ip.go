// Package ip implements the Beflux instruction pointer: its position,
// facing direction, wait counter, and the wrap policy that couples
// horizontal edge crossings to vertical motion.
package ip

import "github.com/Dodecaplex/beflux/word"

// Direction is the IP's facing, encoded in the high-nibble pattern the
// spec assigns: E=0x00, N=0x40, W=0x80, S=0xC0.
type Direction word.Word

const (
	East  Direction = 0x00
	North Direction = 0x40
	West  Direction = 0x80
	South Direction = 0xC0
)

const (
	deltaLeft    = 0x40
	deltaRight   = 0xC0
	deltaReverse = 0x80
)

// Left, Right and Reverse turn the direction by modular addition, per
// the spec's deltas.
func (d Direction) Left() Direction    { return Direction(word.Word(d) + deltaLeft) }
func (d Direction) Right() Direction   { return Direction(word.Word(d) + deltaRight) }
func (d Direction) Reverse() Direction { return Direction(word.Word(d) + deltaReverse) }

// IP is the instruction pointer: (row, col, dir, wait) plus the wrap
// offset that governs edge-crossing behavior.
type IP struct {
	Row, Col word.Word
	Dir      Direction
	Wait     word.Word

	// WrapOffset is set by the W opcode. When nonzero, an E/W step that
	// wraps the column also shifts the row by +/-WrapOffset.
	WrapOffset word.Word
}

// Reset returns the IP to (0,0), facing East, with wait cleared.
// WrapOffset is a program setting, not IP position state, and is left
// untouched.
func (p *IP) Reset() {
	p.Row, p.Col, p.Dir, p.Wait = 0, 0, East, 0
}

// Advance moves the IP one cell in its facing direction, or merely
// decrements Wait if positive. Coordinates wrap modulo 256 via Word
// overflow; a wrapping E/W step additionally shifts Row by WrapOffset
// and sets Wait to 1 when WrapOffset is nonzero.
func (p *IP) Advance() {
	if p.Wait > 0 {
		p.Wait--
		return
	}
	switch p.Dir {
	case East:
		if p.WrapOffset != 0 && p.Col == 0xFF {
			p.Row += p.WrapOffset
			p.Wait = 1
		}
		p.Col++
	case West:
		if p.WrapOffset != 0 && p.Col == 0x00 {
			p.Row -= p.WrapOffset
			p.Wait = 1
		}
		p.Col--
	case North:
		p.Row--
	case South:
		p.Row++
	}
}

// Jump moves the IP directly to (row, col) and arms one tick of wait,
// the shared primitive behind J, C, R, and X.
func (p *IP) Jump(row, col word.Word) {
	p.Row, p.Col = row, col
	p.Wait = 1
}

// CurrentOp returns the byte under the IP in the given grid.
func (p *IP) CurrentOp(g *word.Grid) word.Word {
	return g.Get(p.Row, p.Col)
}
