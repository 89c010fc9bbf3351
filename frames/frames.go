// Package frames implements the Beflux stack frame bank: 256 stacks
// selected by a current-frame index, plus the two coordinate stacks
// used by the call/return operations C and R.
package frames

import (
	"github.com/Dodecaplex/beflux/stack"
	"github.com/Dodecaplex/beflux/word"
)

// Bank is the frame bank. The zero value has current frame 0 and every
// frame empty, ready to use.
type Bank struct {
	frames  [word.Width]stack.Stack
	current word.Word

	// CallsRow and CallsCol are the two coordinate stacks the C and R
	// opcodes use to remember call sites.
	CallsRow stack.Stack
	CallsCol stack.Stack
}

// Current returns the active frame.
func (b *Bank) Current() *stack.Stack {
	return &b.frames[b.current]
}

// CurrentIndex reports the current-frame index.
func (b *Bank) CurrentIndex() word.Word {
	return b.current
}

// Push increments the current-frame index (the `(` opcode).
func (b *Bank) Push() {
	b.current++
}

// Pop decrements the current-frame index (the `)` opcode).
func (b *Bank) Pop() {
	b.current--
}

// Dup pushes a fresh frame and copies the previous frame's contents
// into it, implementing K.
func (b *Bank) Dup() {
	prev := b.current
	b.current++
	b.frames[b.current] = b.frames[prev]
}

// ClearCurrent drains only the active frame (N).
func (b *Bank) ClearCurrent() {
	b.frames[b.current].Clear()
}

// ClearDown drains every frame from current down to zero (M).
func (b *Bank) ClearDown() {
	for i := int(b.current); i >= 0; i-- {
		b.frames[i].Clear()
	}
}
