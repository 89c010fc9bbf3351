package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapes(t *testing.T) {
	assert.EqualValues(t, 0x07, Escape('a'))
	assert.EqualValues(t, 0x0A, Escape('n'))
	assert.EqualValues(t, 'x', Escape('x'))
}

func TestAccumulatorRoundTrip(t *testing.T) {
	var a Accumulator
	_, ok := a.Feed(0x4)
	assert.False(t, ok)
	v, ok := a.Feed(0x2)
	assert.True(t, ok)
	assert.EqualValues(t, 0x42, v)
}

func TestAccumulatorReset(t *testing.T) {
	var a Accumulator
	a.Feed(0xF)
	a.Reset()
	v, ok := a.Feed(0x1)
	assert.False(t, ok)
	v, ok = a.Feed(0x2)
	assert.True(t, ok)
	assert.EqualValues(t, 0x12, v)
}
