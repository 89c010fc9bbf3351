package frames_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dodecaplex/beflux/frames"
)

func TestPushPopSelectsFrame(t *testing.T) {
	var b frames.Bank
	b.Current().Push(1)

	b.Push()
	assert.Equal(t, 0, b.Current().Len())
	b.Current().Push(2)

	b.Pop()
	assert.Equal(t, byte(1), b.Current().Top())
}

func TestDupCopiesPreviousFrame(t *testing.T) {
	var b frames.Bank
	b.Current().Push(10)
	b.Current().Push(20)

	b.Dup()
	assert.Equal(t, byte(20), b.Current().Top())
	assert.Equal(t, 2, b.Current().Len())

	b.Current().Push(30)
	b.Pop()
	assert.Equal(t, 2, b.Current().Len(), "Dup must copy, not alias, the previous frame")
}

func TestClearCurrentOnlyDrainsActiveFrame(t *testing.T) {
	var b frames.Bank
	b.Current().Push(1)
	b.Push()
	b.Current().Push(2)

	b.ClearCurrent()
	assert.Equal(t, 0, b.Current().Len())

	b.Pop()
	assert.Equal(t, 1, b.Current().Len())
}

func TestClearDownDrainsEveryFrameToZero(t *testing.T) {
	var b frames.Bank
	b.Current().Push(1)
	b.Push()
	b.Current().Push(2)
	b.Push()
	b.Current().Push(3)

	b.ClearDown()
	assert.Equal(t, 0, b.Current().Len())
	b.Pop()
	assert.Equal(t, 0, b.Current().Len())
	b.Pop()
	assert.Equal(t, 0, b.Current().Len())
}
