package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter_ReadsAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  terms.txt \n\n"), &out)

	got, err := p.Ask("Glossary input file", "")
	require.NoError(t, err)
	assert.Equal(t, "terms.txt", got)

	got, err = p.Ask("Output folder", "./site")
	require.NoError(t, err)
	assert.Equal(t, "./site", got)

	assert.Equal(t, "Glossary input file: Output folder [./site]: ", out.String())
}

func TestLinePrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("site"), &bytes.Buffer{})
	got, err := p.Ask("Output folder", "")
	require.NoError(t, err)
	assert.Equal(t, "site", got)
}

func TestLinePrompter_EndOfInput(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})

	got, err := p.Ask("Output folder", "./site")
	require.NoError(t, err)
	assert.Equal(t, "./site", got)

	_, err = p.Ask("Glossary input file", "")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestLinePrompter_BlankAnswerWithoutDefault(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("   \n"), &bytes.Buffer{})
	_, err := p.Ask("Glossary input file", "")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestNew_FallsBackToLinePrompterOffTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, IsTerminal(f))
	assert.IsType(t, &LinePrompter{}, New(f, &bytes.Buffer{}))
	assert.False(t, IsTerminal(nil))
}
