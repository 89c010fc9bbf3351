package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dodecaplex/beflux/diag"
)

func TestEmitFormatsLevelNameAndLocation(t *testing.T) {
	var buf bytes.Buffer
	e := diag.Emitter{
		Out:  &buf,
		Name: func(op byte) string { return "DIV" },
	}
	e.Emit(diag.Error, "Zero denominator.", '/', 0x01, 0x02, 0x03)

	out := buf.String()
	assert.Contains(t, out, "Error: DIV (op2f='/') at 010203")
	assert.Contains(t, out, "Zero denominator.")
}

func TestEmitWithoutNameFallsBackToQuestionMark(t *testing.T) {
	var buf bytes.Buffer
	e := diag.Emitter{Out: &buf}
	e.Emit(diag.Warning, "unused", 0x40, 0, 0, 0)
	assert.Contains(t, buf.String(), "Warning: ?")
}

func TestEmitWithNilOutDiscardsSilently(t *testing.T) {
	e := diag.Emitter{}
	assert.NotPanics(t, func() {
		e.Emit(diag.Note, "note", 0x20, 0, 0, 0)
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "Note", diag.Note.String())
	assert.Equal(t, "Warning", diag.Warning.String())
	assert.Equal(t, "Error", diag.Error.String())
}
