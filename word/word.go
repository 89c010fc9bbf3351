// Package word defines the fixed 8-bit value Beflux operates on and the
// 256x256 grid of such values that a program page is made of.
package word

// Word is the interpreter's only scalar type. Go's byte already wraps
// modulo 256 under arithmetic, which is exactly the semantics a Beflux
// word needs, so Word is an alias rather than a defined type.
type Word = byte

// Width is the side length of a Grid, the number of grids in a Bank,
// the number of frames in a frame Bank, and the size of the register
// file: everything in Beflux is word-indexed, so everything is 256 deep.
const Width = 256

// Grid is one 256x256 page of program bytes, addressed by (row, col).
type Grid struct {
	cells [Width][Width]Word
}

// Get returns the byte at (row, col).
func (g *Grid) Get(row, col Word) Word {
	return g.cells[row][col]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col, v Word) {
	g.cells[row][col] = v
}

// Fill sets every cell of the grid to v. Freshly allocated grids are
// filled with spaces, matching the padding rule for short or missing
// program lines.
func (g *Grid) Fill(v Word) {
	for r := range g.cells {
		row := &g.cells[r]
		for c := range row {
			row[c] = v
		}
	}
}

// Row copies one row of the grid into dst, which must have length Width
// or greater; it is used by the program writer.
func (g *Grid) Row(row Word, dst []Word) {
	copy(dst, g.cells[row][:])
}
