package hostio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dodecaplex/beflux/hostio"
)

func TestBindOutputFileWritesThenClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := &hostio.Streams{}
	require.NoError(t, s.BindOutputFile(path))
	_, err := s.Out.Write([]byte("hello"))
	require.NoError(t, err)
	s.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestBindInputFileReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	s := &hostio.Streams{}
	require.NoError(t, s.BindInputFile(path))
	defer s.Close()

	buf := make([]byte, 3)
	n, err := s.In.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))
}

func TestDetachOutputSetsNil(t *testing.T) {
	s := hostio.Default()
	s.Out = &bytes.Buffer{}
	s.DetachOutput()
	assert.Nil(t, s.Out)
}

func TestRebindOutputFileClosesPrevious(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")

	s := &hostio.Streams{}
	require.NoError(t, s.BindOutputFile(first))
	require.NoError(t, s.BindOutputFile(second))
	s.Out.Write([]byte("second"))
	s.Close()

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

type flushRecorder struct {
	bytes.Buffer
	flushed bool
}

func (f *flushRecorder) Flush() error {
	f.flushed = true
	return nil
}

func TestFlushCallsFlushIfSupported(t *testing.T) {
	rec := &flushRecorder{}
	s := &hostio.Streams{Out: rec}
	s.Flush()
	assert.True(t, rec.flushed)
}
