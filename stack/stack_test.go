package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dodecaplex/beflux/word"
)

func TestPushPopOrder(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, word.Word(3), s.Top())
	assert.Equal(t, word.Word(3), s.Pop())
	assert.Equal(t, word.Word(2), s.Pop())
	assert.Equal(t, word.Word(1), s.Pop())
	assert.Equal(t, 0, s.Len())
}

func TestEmptyPopReturnsZero(t *testing.T) {
	var s Stack
	assert.Equal(t, word.Word(0), s.Pop())
	assert.Equal(t, word.Word(0), s.Top())
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestOverflowIsFatal(t *testing.T) {
	var s Stack
	for i := 0; i < Capacity; i++ {
		assert.NoError(t, s.Push(byte(i)))
	}
	assert.Error(t, s.Push(1))
}
