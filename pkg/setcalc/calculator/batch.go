package calculator

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sambeau/setcalc/pkg/setcalc/errors"
	"github.com/sambeau/setcalc/pkg/setcalc/input"
)

// read handles the read command: the rest of the line names the file.
func (s *Session) read() error {
	path, err := s.src.NextLine()
	if err != nil {
		return endOfInput("file path", err)
	}
	return s.Replay(strings.TrimSpace(path))
}

// Replay executes the commands in the file at path, one line at a time, as
// if they had been typed. After a failing line the user is asked whether to
// go on; "n" abandons the rest of the file but not the session.
func (s *Session) Replay(path string) error {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if s.reading[key] {
		return errors.New(errors.RecursiveRead, map[string]any{"Path": path})
	}

	lines, err := s.loadLines(path)
	if err != nil {
		return err
	}

	s.reading[key] = true
	defer delete(s.reading, key)
	defer fmt.Fprintf(s.out, "Exit file - %s\n\n", path)

	s.log.Infof("reading %d command(s) from %s", len(lines), path)
	for n, line := range lines {
		if err := s.replayLine(line); err != nil {
			s.reportError(err)
			s.log.Warnf("%s: line %d failed: %s", path, n+1, errors.Code(err))
			ok, err := s.askToContinue()
			if err != nil {
				return err
			}
			if !ok {
				s.log.Infof("%s: abandoned after line %d", path, n+1)
				break
			}
		}
		if !s.running {
			break
		}
	}
	return nil
}

// replayLine runs one command with the active source redirected to line.
// The previous source is restored on every path out.
func (s *Session) replayLine(line string) error {
	fmt.Fprintf(s.out, "Read the current command: %s\n\n", line)
	restore := s.redirect(input.NewLineSource(line))
	defer restore()
	return s.Step()
}

// redirect makes src the active source and returns a func restoring the
// previous one.
func (s *Session) redirect(src input.Source) func() {
	prev := s.src
	s.src = src
	return func() { s.src = prev }
}

// loadLines returns the non-blank lines of the file at path.
func (s *Session) loadLines(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New(errors.FileNotFound, map[string]any{"Path": path})
	}
	f, err := s.open(path)
	if err != nil {
		return nil, errors.New(errors.FileNotFound, map[string]any{"Path": path}).WithCause(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(errors.FileNotFound, map[string]any{"Path": path}).WithCause(err)
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.EmptyFile, map[string]any{"Path": path})
	}
	return lines, nil
}
