// Package calculator runs set calculator sessions: the command loop, its
// handlers and batch replay of command files.
package calculator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/message"

	"github.com/sambeau/setcalc/pkg/setcalc/errors"
	"github.com/sambeau/setcalc/pkg/setcalc/input"
	"github.com/sambeau/setcalc/pkg/setcalc/logging"
	"github.com/sambeau/setcalc/pkg/setcalc/operation"
	"github.com/sambeau/setcalc/pkg/setcalc/registry"
)

const (
	limitPrompt   = "\nPlease enter limit of options for operation's list (3 - 100): "
	commandPrompt = "\nEnter command('help' for the list of available commands) : "
	shrinkPrompt  = "Requested size is lower than current existing operations in list. \nAre you sure you want to change the limit? ( y / n ) \n"
	goodbye       = "Goodbye! :)\n"
)

// Opener opens batch files for the read command.
type Opener func(path string) (io.ReadCloser, error)

// Session is the state of one calculator session: the registry, the active
// input source and the output transcript.
type Session struct {
	reg      *registry.Registry
	src      input.Source
	tty      input.Source // the source commands were typed on; replay never replaces it
	out      io.Writer
	log      logging.Logger
	printer  *message.Printer
	errColor *color.Color
	open     Opener
	limit    int
	scripts  []string
	running  bool
	reading  map[string]bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithPrinter formats set elements with p, e.g. to group digits.
func WithPrinter(p *message.Printer) Option {
	return func(s *Session) { s.printer = p }
}

// WithColor toggles colouring of error prefixes.
func WithColor(enabled bool) Option {
	return func(s *Session) {
		if enabled {
			s.errColor.EnableColor()
		} else {
			s.errColor.DisableColor()
		}
	}
}

// WithLimit skips the startup limit prompt and uses limit instead.
// A limit of 0 keeps the prompt.
func WithLimit(limit int) Option {
	return func(s *Session) { s.limit = limit }
}

// WithOpener replaces os.Open for batch files.
func WithOpener(open Opener) Option {
	return func(s *Session) { s.open = open }
}

// WithScripts replays the given files, in order, before the first prompt.
func WithScripts(paths ...string) Option {
	return func(s *Session) { s.scripts = append(s.scripts, paths...) }
}

// New returns a session reading from src and writing its transcript to out.
func New(src input.Source, out io.Writer, opts ...Option) *Session {
	reg, err := registry.New(registry.DefaultLimit)
	if err != nil {
		panic(err)
	}
	s := &Session{
		reg:      reg,
		src:      src,
		tty:      src,
		out:      out,
		log:      logging.NullLogger(),
		errColor: color.New(color.FgRed, color.Bold),
		open:     func(path string) (io.ReadCloser, error) { return os.Open(path) },
		running:  true,
		reading:  make(map[string]bool),
	}
	s.errColor.DisableColor()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the session's operation registry.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Running reports whether the session still accepts commands.
func (s *Session) Running() bool { return s.running }

// Run asks for the capacity limit, replays any configured scripts, then
// executes commands until exit or until the input is exhausted. Command
// failures are reported and never end the session.
func (s *Session) Run(ctx context.Context) error {
	if err := s.startup(); err != nil {
		if s.exhausted(err) {
			s.exit()
			return nil
		}
		return err
	}

	for _, path := range s.scripts {
		if err := s.Replay(path); err != nil {
			s.handleError(err)
		}
		if !s.running {
			return nil
		}
	}

	for s.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printOperations()

		err := s.Step()
		if err == nil {
			continue
		}
		if err == io.EOF {
			s.exit()
			break
		}
		var ce *errors.CalcError
		if !stderrors.As(err, &ce) {
			s.log.Errorf("reading input: %v", err)
			s.exit()
			return err
		}
		s.handleError(err)
		if s.src.AtEnd() {
			s.exit()
		}
	}
	return nil
}

// startup obtains the initial limit, retrying until a valid one is given.
func (s *Session) startup() error {
	if s.limit != 0 {
		_, err := s.reg.SetLimit(s.limit, s.confirmShrink)
		return err
	}
	for {
		err := s.readLimit()
		if err == nil {
			return nil
		}
		var ce *errors.CalcError
		if s.exhausted(err) || !stderrors.As(err, &ce) {
			return err
		}
		s.handleError(err)
	}
}

// Step reads one verb from the active source and executes it.
func (s *Session) Step() error {
	verb, err := s.src.NextToken()
	if err != nil {
		return err
	}
	return s.runAction(lookupAction(verb), verb)
}

// printOperations writes the numbered registry listing and the prompt.
func (s *Session) printOperations() {
	fmt.Fprintf(s.out, "\nMax amount of option allowed : %d\nList of available set operations:\n", s.reg.Limit())
	s.reg.Each(func(i int, n *operation.Node) {
		fmt.Fprintf(s.out, "%d.\t%s\n", i, n)
	})
	s.prompt(commandPrompt)
}

// prompt writes text, handing its last line to the active source when the
// source draws its own prompts.
func (s *Session) prompt(text string) {
	s.promptOn(s.src, text)
}

func (s *Session) promptOn(src input.Source, text string) {
	p, ok := src.(input.Prompter)
	if !ok {
		fmt.Fprint(s.out, text)
		return
	}
	i := strings.LastIndexByte(text, '\n')
	fmt.Fprint(s.out, text[:i+1])
	p.SetPrompt(text[i+1:])
}

// readLimit reads a capacity limit and applies it, asking for confirmation
// when the registry would shrink.
func (s *Session) readLimit() error {
	s.prompt(limitPrompt)
	n, err := s.readInt("limit")
	if err != nil {
		return err
	}
	applied, err := s.reg.SetLimit(n, s.confirmShrink)
	if err != nil {
		return err
	}
	if !applied {
		fmt.Fprintf(s.out, "The limit stays %d.\n", s.reg.Limit())
		return nil
	}
	s.log.Debugf("limit set to %d (%d operations)", s.reg.Limit(), s.reg.Size())
	return nil
}

func (s *Session) confirmShrink() (bool, error) {
	s.prompt(shrinkPrompt)
	tok, err := s.src.NextToken()
	if err != nil {
		return false, endOfInput("answer", err)
	}
	switch tok {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return false, errors.New(errors.InvalidYesNo, nil)
}

// askToContinue asks whether a batch replay should go on after a failure.
// The answer is read from the interactive source, however deeply files are
// nested, and must be a line holding exactly y or n.
func (s *Session) askToContinue() (bool, error) {
	s.promptOn(s.tty, "Do you wish to continue? ( y / n )\n")
	line, err := s.tty.NextLine()
	if err != nil {
		return false, endOfInput("answer", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 1 || (fields[0] != "y" && fields[0] != "n") {
		return false, errors.New(errors.InvalidYesNo, nil)
	}
	return fields[0] == "y", nil
}

func (s *Session) readInt(what string) (int, error) {
	tok, err := s.src.NextToken()
	if err != nil {
		return 0, endOfInput(what, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.New(errors.MalformedToken, map[string]any{"What": what, "Token": tok}).WithCause(err)
	}
	return n, nil
}

// reportError writes "ERROR : <message>".
func (s *Session) reportError(err error) {
	msg := err.Error()
	var ce *errors.CalcError
	if stderrors.As(err, &ce) {
		msg = ce.PrettyString()
	}
	s.errColor.Fprint(s.out, "ERROR :")
	fmt.Fprintf(s.out, " %s\n", msg)
}

// handleError reports err and drops the rest of the current input line.
func (s *Session) handleError(err error) {
	s.reportError(err)
	s.logFailure(err)
	s.src.DiscardLine()
}

func (s *Session) logFailure(err error) {
	var ce *errors.CalcError
	if stderrors.As(err, &ce) {
		if data, jerr := ce.ToJSON(); jerr == nil {
			s.log.Debugf("command failed: %s", data)
			return
		}
	}
	s.log.Debugf("command failed: %v", err)
}

// exhausted reports whether err means the interactive input has run out.
func (s *Session) exhausted(err error) bool {
	return stderrors.Is(err, io.EOF) && s.src.AtEnd()
}

func (s *Session) exit() {
	fmt.Fprint(s.out, goodbye)
	s.running = false
}

func endOfInput(what string, err error) error {
	if err == io.EOF {
		return errors.New(errors.UnexpectedEnd, map[string]any{"What": what}).WithCause(err)
	}
	return err
}
