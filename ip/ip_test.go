package ip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvancePlain(t *testing.T) {
	var p IP
	p.Dir = East
	p.Advance()
	assert.EqualValues(t, 1, p.Col)
	assert.EqualValues(t, 0, p.Row)
}

func TestAdvanceWraps(t *testing.T) {
	var p IP
	p.Dir = West
	p.Col = 0
	p.Advance()
	assert.EqualValues(t, 0xFF, p.Col)
}

func TestWrapOffsetOnEastEdge(t *testing.T) {
	var p IP
	p.Dir = East
	p.Col = 0xFF
	p.WrapOffset = 3
	p.Advance()
	assert.EqualValues(t, 3, p.Row)
	assert.EqualValues(t, 0, p.Col)
	assert.EqualValues(t, 1, p.Wait)

	// The tick consumed by the wrap absorbs the next advance.
	p.Advance()
	assert.EqualValues(t, 0, p.Wait)
	assert.EqualValues(t, 0, p.Col)
}

func TestWrapOffsetOnWestEdgeIsSymmetric(t *testing.T) {
	var p IP
	p.Dir = West
	p.Col = 0
	p.WrapOffset = 3
	p.Row = 10
	p.Advance()
	assert.EqualValues(t, 7, p.Row)
	assert.EqualValues(t, 0xFF, p.Col)
	assert.EqualValues(t, 1, p.Wait)
}

func TestWaitDelaysAdvance(t *testing.T) {
	var p IP
	p.Wait = 2
	p.Dir = East
	p.Advance()
	assert.EqualValues(t, 1, p.Wait)
	assert.EqualValues(t, 0, p.Col)
	p.Advance()
	assert.EqualValues(t, 0, p.Wait)
	assert.EqualValues(t, 0, p.Col)
	p.Advance()
	assert.EqualValues(t, 1, p.Col)
}

func TestTurns(t *testing.T) {
	assert.Equal(t, North, East.Left())
	assert.Equal(t, South, East.Right())
	assert.Equal(t, West, East.Reverse())
}
