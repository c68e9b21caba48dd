// Package prompt asks the user for values the command line did not provide.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNoAnswer is returned when input ends before an answer was given and no
// placeholder is available.
var ErrNoAnswer = errors.New("no answer given")

// Prompter obtains a single value from the user. An empty answer yields placeholder.
type Prompter interface {
	Ask(title, placeholder string) (string, error)
}

// New returns an interactive form prompter when in is a terminal and a plain
// line prompter otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if IsTerminal(in) {
		return &FormPrompter{}
	}
	return NewLinePrompter(in, out)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FormPrompter asks through a single-field huh form.
type FormPrompter struct{}

// Ask runs the form and returns the trimmed answer.
func (FormPrompter) Ask(title, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value).
				Validate(requireValue(placeholder)),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return answerOrDefault(value, placeholder)
}

// LinePrompter writes the question to out and reads one line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter over plain streams.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints "title [placeholder]: " and reads the answer.
func (p *LinePrompter) Ask(title, placeholder string) (string, error) {
	if placeholder != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", title, placeholder)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", title)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return answerOrDefault(line, placeholder)
}

func requireValue(placeholder string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" && placeholder == "" {
			return ErrNoAnswer
		}
		return nil
	}
}

func answerOrDefault(answer, placeholder string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer != "" {
		return answer, nil
	}
	if placeholder != "" {
		return placeholder, nil
	}
	return "", ErrNoAnswer
}
