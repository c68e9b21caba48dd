package lineio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestLineReader_StripsTerminators(t *testing.T) {
	r := NewReader(strings.NewReader("Java\r\nA language.\n\nclass"))
	assert.Equal(t, []string{"Java", "A language.", "", "class"}, readAll(t, r))

	// EOF is sticky.
	_, err := r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, r.Close())
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestDirCreator_WritesAndCloses(t *testing.T) {
	dir := t.TempDir()
	w, err := DirCreator{Dir: dir}.Create("index.html")
	require.NoError(t, err)

	w.Print("<html>")
	w.Println("")
	w.Println("</html>")
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>\n</html>\n", string(data))
}

func TestDirCreator_MissingDirectory(t *testing.T) {
	_, err := DirCreator{Dir: filepath.Join(t.TempDir(), "nope")}.Create("a.html")
	assert.Error(t, err)
}

type failingWriter struct{ closed bool }

func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (f *failingWriter) Close() error              { f.closed = true; return nil }

func TestBufferedWriter_StickyErrorStillReleases(t *testing.T) {
	target := &failingWriter{}
	w := NewWriter(target)
	w.Println(strings.Repeat("x", 8192))
	w.Println("more")

	err := w.Close()
	require.EqualError(t, err, "disk full")
	assert.True(t, target.closed)
}

func TestMemory_ReplacesOnRecreate(t *testing.T) {
	m := NewMemory()
	for _, content := range []string{"first", "second"} {
		w, err := m.Create("a.html")
		require.NoError(t, err)
		w.Print(content)
		require.NoError(t, w.Close())
	}
	w, err := m.Create("B.html")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, ok := m.File("a.html")
	require.True(t, ok)
	assert.Equal(t, "second", got)
	assert.Equal(t, []string{"a.html", "B.html"}, m.Created())
	assert.Equal(t, []string{"B.html", "a.html"}, m.Names())
}

func TestLineReader_LongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	r := NewReader(strings.NewReader("big\n" + long + "\r\n\nnext\n" + long))
	lines := readAll(t, r)
	require.Len(t, lines, 5)
	assert.Equal(t, "big", lines[0])
	assert.Len(t, lines[1], len(long))
	assert.Empty(t, lines[2])
	assert.Equal(t, "next", lines[3])
	assert.Len(t, lines[4], len(long))
}
