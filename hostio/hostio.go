// Package hostio binds the three byte-stream endpoints a Beflux
// interpreter reads from and writes to, implementing the "scoped
// acquisition with guaranteed release" policy the I/O opcodes and
// interpreter destruction both rely on.
package hostio

import (
	"bufio"
	"io"
	"os"
)

// Streams holds the current input, output, and error endpoints. A nil
// In/Out is a valid detached state: the EOF opcode reports 0xFF for a
// nil In, and reads from a nil In or writes to a nil Out are fatal.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	inFile  *os.File
	outFile *os.File
}

// Default returns Streams bound to the host's standard input, output,
// and error. Stdin is wrapped in a bufio.Reader so the EOF opcode can
// Peek ahead without consuming a byte, the same as a bound input file.
func Default() *Streams {
	return &Streams{In: bufio.NewReader(os.Stdin), Out: os.Stdout, Err: os.Stderr}
}

// BindInputFile closes any currently open non-standard input file and
// opens name for reading in its place.
func (s *Streams) BindInputFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	s.closeInFile()
	s.inFile = f
	s.In = bufio.NewReader(f)
	return nil
}

// BindOutputFile closes any currently open non-standard output file and
// creates name for writing in its place.
func (s *Streams) BindOutputFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	s.closeOutFile()
	s.outFile = f
	s.Out = f
	return nil
}

// DetachInput closes any open input file and sets In to nil.
func (s *Streams) DetachInput() {
	s.closeInFile()
	s.In = nil
}

// DetachOutput closes any open output file and sets Out to nil.
func (s *Streams) DetachOutput() {
	s.closeOutFile()
	s.Out = nil
}

// BindStdin rebinds In to the host's stdin, closing any open file.
func (s *Streams) BindStdin() {
	s.closeInFile()
	s.In = bufio.NewReader(os.Stdin)
}

// BindStdout rebinds Out to the host's stdout, closing any open file.
func (s *Streams) BindStdout() {
	s.closeOutFile()
	s.Out = os.Stdout
}

func (s *Streams) closeInFile() {
	if s.inFile != nil {
		s.inFile.Close()
		s.inFile = nil
	}
}

func (s *Streams) closeOutFile() {
	if s.outFile != nil {
		s.outFile.Close()
		s.outFile = nil
	}
}

type flusher interface{ Flush() error }

// Flush flushes Out if it exposes a Flush method, matching the
// historical WAIT opcode's fflush(out) call.
func (s *Streams) Flush() {
	if f, ok := s.Out.(flusher); ok {
		f.Flush()
	}
}

// Close releases any non-standard streams currently held, matching the
// interpreter's stream-release policy on destruction.
func (s *Streams) Close() {
	s.closeInFile()
	s.closeOutFile()
}
