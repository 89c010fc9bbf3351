// Package bank implements the Beflux program bank: up to 256 program
// grids indexed by a word, and the provider interface the core uses to
// load and save them without depending on the filesystem directly.
package bank

import (
	"bufio"
	"io"
	"os"

	"github.com/Dodecaplex/beflux/word"
)

// Provider loads and saves named program sources. The core depends
// only on this interface; FileProvider is the reference host's default
// filesystem-backed implementation.
type Provider interface {
	Load(name string) (io.ReadCloser, error)
	Save(name string) (io.WriteCloser, error)
}

// FileProvider resolves program names to files on disk, appending the
// historical ".bfx" extension.
type FileProvider struct {
	// Dir, if set, is prepended to every name before the extension.
	Dir string
}

func (p FileProvider) path(name string) string {
	if p.Dir != "" {
		name = p.Dir + string(os.PathSeparator) + name
	}
	return name + ".bfx"
}

// Load opens <Dir>/<name>.bfx for reading.
func (p FileProvider) Load(name string) (io.ReadCloser, error) {
	return os.Open(p.path(name))
}

// Save creates (or truncates) <Dir>/<name>.bfx for writing.
func (p FileProvider) Save(name string) (io.WriteCloser, error) {
	return os.Create(p.path(name))
}

// Bank is a mapping from program index to Grid, holding up to 256
// grids, all pre-filled with spaces.
type Bank struct {
	grids [word.Width]*word.Grid
}

// New returns a Bank with every grid allocated and filled with spaces.
func New() *Bank {
	b := &Bank{}
	for i := range b.grids {
		g := &word.Grid{}
		g.Fill(' ')
		b.grids[i] = g
	}
	return b
}

// Grid returns the grid at program index prog.
func (b *Bank) Grid(prog word.Word) *word.Grid {
	return b.grids[prog]
}

// Get reads one cell of program prog.
func (b *Bank) Get(prog, row, col word.Word) word.Word {
	return b.grids[prog].Get(row, col)
}

// Set writes one cell of program prog.
func (b *Bank) Set(prog, row, col, v word.Word) {
	b.grids[prog].Set(row, col, v)
}

// Load reads up to word.Width lines of up to word.Width bytes from r
// into grid prog. Short lines are right-padded with spaces; missing
// rows are left as spaces; newlines are not stored.
func (b *Bank) Load(prog word.Word, r io.Reader) error {
	g := &word.Grid{}
	g.Fill(' ')
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 512), word.Width*4)
	row := 0
	for row < word.Width && sc.Scan() {
		line := sc.Bytes()
		n := len(line)
		if n > word.Width {
			n = word.Width
		}
		for col := 0; col < n; col++ {
			g.Set(word.Word(row), word.Word(col), line[col])
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	b.grids[prog] = g
	return nil
}

// Save writes grid prog as word.Width newline-terminated lines of
// exactly word.Width bytes each.
func (b *Bank) Save(prog word.Word, w io.Writer) error {
	g := b.grids[prog]
	bw := bufio.NewWriter(w)
	var line [word.Width]word.Word
	for row := 0; row < word.Width; row++ {
		g.Row(word.Word(row), line[:])
		if _, err := bw.Write(line[:]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
