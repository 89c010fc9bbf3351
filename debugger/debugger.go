// Package debugger implements an interactive single-step TUI for a
// Beflux interpreter, adapted from the teacher's bubbletea/lipgloss/
// go-spew debugger: one tick runs per keypress, and the view renders
// the active program window, the current frame, the IP, and the mode.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/Dodecaplex/beflux/interp"
	"github.com/Dodecaplex/beflux/word"
)

type model struct {
	p *interp.Interpreter

	prevRow, prevCol word.Word
	error            error
	done             bool
}

// Init does nothing: the program is assumed already loaded by the
// caller, and the first Step (on the first keypress) moves the
// interpreter from Halt to Normal.
func (m model) Init() tea.Cmd {
	return nil
}

// Update steps the interpreter by one opcode evaluation per " " or "j"
// keypress, and quits on "q".
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			if m.done {
				return m, nil
			}
			m.prevRow, m.prevCol = m.p.IP.Row, m.p.IP.Col
			if err := m.p.Step(); err != nil {
				m.error = err
				return m, tea.Quit
			}
			if m.p.Halted() {
				m.done = true
			}
		}
	}
	return m, nil
}

// renderWindow renders a small window of the current program grid
// around the IP, highlighting the cell under it.
func (m model) renderWindow() string {
	g := m.p.Bank.Grid(m.p.Program)
	row := m.p.IP.Row
	var lines []string
	for dr := -2; dr <= 2; dr++ {
		r := word.Word(int(row) + dr)
		var line strings.Builder
		fmt.Fprintf(&line, "%02x | ", r)
		for c := 0; c < 32; c++ {
			col := word.Word(int(m.p.IP.Col) - 8 + c)
			b := g.Get(r, col)
			if r == m.p.IP.Row && col == m.p.IP.Col {
				fmt.Fprintf(&line, "[%c]", printable(b))
			} else {
				fmt.Fprintf(&line, " %c ", printable(b))
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func printable(b word.Word) byte {
	if b >= 0x20 && b < 0x7F {
		return b
	}
	return '.'
}

func (m model) status() string {
	return fmt.Sprintf(`
tick: %d
prog: %02x
row:  %02x (%02x)
col:  %02x (%02x)
dir:  %02x
wait: %02x
mode: %s
status: %02x
`,
		m.p.Tick, m.p.Program,
		m.p.IP.Row, m.prevRow,
		m.p.IP.Col, m.prevCol,
		m.p.IP.Dir, m.p.IP.Wait,
		m.p.Mode, m.p.Status)
}

// View renders the debugger's UI: the grid window, the status block,
// and a deep dump of the active frame's contents.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderWindow(),
			m.status(),
		),
		"",
		spew.Sdump(m.p.Frames.Current()),
	)
}

// Run starts the interactive debugger over an already-loaded
// interpreter, single-stepping on each keypress until the program
// halts or the user quits.
func Run(p *interp.Interpreter) error {
	out, err := tea.NewProgram(model{p: p}).Run()
	if err != nil {
		return err
	}
	x := out.(model)
	return x.error
}
