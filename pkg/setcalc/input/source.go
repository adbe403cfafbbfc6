// Package input provides the token sources the calculator reads commands,
// operands and sets from.
//
// A Source behaves like a whitespace-delimited token stream layered over a
// sequence of lines: tokens may span lines, but DiscardLine and NextLine let
// the interpreter work line by line when it needs to (error recovery, file
// paths, y/n answers).
package input

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Source is the active input of a session.
type Source interface {
	// NextToken returns the next whitespace-delimited token, reading further
	// lines as needed. It returns io.EOF once the source is exhausted.
	NextToken() (string, error)

	// NextLine returns the unread remainder of the current line when it holds
	// anything but whitespace; otherwise it reads and returns a whole new line.
	NextLine() (string, error)

	// AtEnd reports whether nothing is buffered and the underlying lines are
	// known to be exhausted. It never blocks.
	AtEnd() bool

	// DiscardLine drops whatever is left of the current line.
	DiscardLine()
}

// Prompter is implemented by sources that draw their own prompt when they
// need a fresh line (line editors). Sessions hand the prompt text over
// instead of writing it to the output.
type Prompter interface {
	SetPrompt(prompt string)
}

// LineFunc produces the next raw line without its terminator.
// It returns io.EOF when there are no more lines.
type LineFunc func() (string, error)

// Lines is a Source built on a LineFunc.
type Lines struct {
	next    LineFunc
	current string
	eof     bool
}

// NewLines returns a Source that pulls lines from next on demand.
func NewLines(next LineFunc) *Lines {
	return &Lines{next: next}
}

// NewReaderSource returns a Source reading lines from r.
func NewReaderSource(r io.Reader) *Lines {
	br := bufio.NewReader(r)
	return NewLines(func() (string, error) {
		line, err := br.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		if err != nil {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	})
}

// NewLineSource returns a Source holding exactly one line.
func NewLineSource(line string) *Lines {
	l := &Lines{current: line, eof: true}
	l.next = func() (string, error) { return "", io.EOF }
	return l
}

// NextToken implements Source.
func (l *Lines) NextToken() (string, error) {
	for {
		rest := strings.TrimLeftFunc(l.current, unicode.IsSpace)
		if rest != "" {
			end := strings.IndexFunc(rest, unicode.IsSpace)
			if end < 0 {
				l.current = ""
				return rest, nil
			}
			l.current = rest[end:]
			return rest[:end], nil
		}
		l.current = ""
		if err := l.fill(); err != nil {
			return "", err
		}
	}
}

// NextLine implements Source.
func (l *Lines) NextLine() (string, error) {
	if rest := strings.TrimSpace(l.current); rest != "" {
		l.current = ""
		return rest, nil
	}
	l.current = ""
	if err := l.fill(); err != nil {
		return "", err
	}
	line := l.current
	l.current = ""
	return line, nil
}

// AtEnd implements Source.
func (l *Lines) AtEnd() bool {
	return l.eof && strings.TrimSpace(l.current) == ""
}

// DiscardLine implements Source.
func (l *Lines) DiscardLine() {
	l.current = ""
}

// Buffered reports whether unread, non-blank input remains on the current line.
func (l *Lines) Buffered() bool {
	return strings.TrimSpace(l.current) != ""
}

func (l *Lines) fill() error {
	if l.eof {
		return io.EOF
	}
	line, err := l.next()
	if err != nil {
		if err == io.EOF {
			l.eof = true
		}
		return err
	}
	l.current = line
	return nil
}
