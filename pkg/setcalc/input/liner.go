package input

import (
	"fmt"
	"io"

	"github.com/peterh/liner"
)

// LinerSource reads lines through a liner line editor, so interactive
// sessions get history and completion.
type LinerSource struct {
	*Lines
	state  *liner.State
	out    io.Writer
	prompt string
}

// NewLinerSource wraps state. Prompts that cannot be shown by the editor,
// because the next token is already buffered, are written to out.
func NewLinerSource(state *liner.State, out io.Writer) *LinerSource {
	s := &LinerSource{state: state, out: out}
	s.Lines = NewLines(s.readLine)
	return s
}

// SetPrompt implements Prompter.
func (s *LinerSource) SetPrompt(prompt string) {
	if s.Lines.Buffered() {
		fmt.Fprint(s.out, prompt)
		s.prompt = ""
		return
	}
	s.prompt = prompt
}

func (s *LinerSource) readLine() (string, error) {
	for {
		line, err := s.state.Prompt(s.prompt)
		if err == liner.ErrPromptAborted {
			// Ctrl+C drops the line being edited and asks again
			fmt.Fprintln(s.out, "^C")
			continue
		}
		if err != nil {
			return "", err
		}
		s.prompt = ""
		if line != "" {
			s.state.AppendHistory(line)
		}
		return line, nil
	}
}
