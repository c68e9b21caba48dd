// Package lineio holds the line-oriented reader and writer the glossary
// pipeline consumes, with file-backed and in-memory implementations.
package lineio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reader yields input lines in order. ReadLine returns io.EOF once the input is exhausted.
type Reader interface {
	ReadLine() (string, error)
	Close() error
}

// Writer appends text to a named output target. Write failures are sticky:
// later calls become no-ops and the first error is returned by Close.
type Writer interface {
	Print(s string)
	Println(s string)
	Close() error
}

// Creator opens named output targets.
type Creator interface {
	Create(name string) (Writer, error)
}

// LineReader reads lines from an io.Reader. Line terminators (\n or \r\n)
// are stripped. Lines have no length limit.
type LineReader struct {
	r      *bufio.Reader
	closer io.Closer
	done   bool
}

// NewReader wraps r. Close is a no-op unless r is also an io.Closer.
func NewReader(r io.Reader) *LineReader {
	lr := &LineReader{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		lr.closer = c
	}
	return lr
}

// OpenFile opens path for line reading.
func OpenFile(path string) (*LineReader, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return NewReader(f), nil
}

// ReadLine returns the next line, or io.EOF at end of input. A final line
// without a terminator is returned as a line.
func (r *LineReader) ReadLine() (string, error) {
	if r.done {
		return "", io.EOF
	}
	line, err := r.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		r.done = true
		if line == "" {
			return "", io.EOF
		}
		return strings.TrimSuffix(line, "\r"), nil
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Close releases the underlying source.
func (r *LineReader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// BufferedWriter is a Writer over an io.Writer with an optional closer.
type BufferedWriter struct {
	w      *bufio.Writer
	closer io.Closer
	err    error
	closed bool
}

// NewWriter wraps w. If w is an io.Closer it is closed by Close.
func NewWriter(w io.Writer) *BufferedWriter {
	bw := &BufferedWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		bw.closer = c
	}
	return bw
}

// Print appends s.
func (w *BufferedWriter) Print(s string) {
	if w.err != nil || w.closed {
		return
	}
	_, w.err = w.w.WriteString(s)
}

// Println appends s followed by a newline.
func (w *BufferedWriter) Println(s string) {
	w.Print(s)
	w.Print("\n")
}

// Close flushes buffered output and releases the target. The target is
// released even when an earlier write failed. Calling Close twice is safe.
func (w *BufferedWriter) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err == nil {
		w.err = w.w.Flush()
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil && w.err == nil {
			w.err = err
		}
	}
	return w.err
}

// DirCreator creates files inside Dir.
type DirCreator struct {
	Dir string
}

// Create opens (truncating) Dir/name for writing.
func (d DirCreator) Create(name string) (Writer, error) {
	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return nil, err
	}
	return NewWriter(f), nil
}
