// Package repl wires a calculator session to a terminal or to plain input.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"golang.org/x/text/message"

	"github.com/sambeau/setcalc/pkg/setcalc/calculator"
	"github.com/sambeau/setcalc/pkg/setcalc/input"
	"github.com/sambeau/setcalc/pkg/setcalc/logging"
)

const LOGO = `
█▀ █▀▀ ▀█▀ █▀▀ ▄▀█ █░░ █▀▀
▄█ ██▄ ░█░ █▄▄ █▀█ █▄▄ █▄▄ `

// Options configures a REPL run.
type Options struct {
	Version     string
	HistoryFile string // "" uses $TMPDIR/.setcalc_history
	Color       bool   // only honoured on a terminal
	Limit       int    // 0 asks at startup
	Scripts     []string
	Logger      logging.Logger
	Printer     *message.Printer
}

// Start runs a session on in and out. When in is a terminal the session
// reads through a line editor with history and tab completion; otherwise
// lines are read as they come, which suits piped input.
func Start(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = logging.NullLogger()
	}
	sessionOpts := []calculator.Option{
		calculator.WithLogger(opts.Logger),
		calculator.WithPrinter(opts.Printer),
		calculator.WithLimit(opts.Limit),
		calculator.WithScripts(opts.Scripts...),
	}

	if !IsTerminal(in) {
		session := calculator.New(input.NewReaderSource(in), out, sessionOpts...)
		return session.Run(ctx)
	}

	line := liner.NewLiner()
	defer line.Close()

	// Enable Ctrl+C to abort current line
	line.SetCtrlCAborts(true)

	line.SetCompleter(func(line string) []string {
		return filterCompletions(line)
	})

	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = filepath.Join(os.TempDir(), ".setcalc_history")
	}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	// Save history on exit
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		} else {
			opts.Logger.Warnf("saving history: %v", err)
		}
	}()

	fmt.Fprintf(out, "%s", LOGO)
	fmt.Fprintln(out, "v", opts.Version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")

	sessionOpts = append(sessionOpts, calculator.WithColor(opts.Color))
	session := calculator.New(input.NewLinerSource(line, out), out, sessionOpts...)
	return session.Run(ctx)
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// filterCompletions completes the command word at the start of a line.
func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	// Only the first word is a command
	if strings.ContainsAny(trimmed, " \t") || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		return nil
	}

	var matches []string
	for _, verb := range calculator.Verbs() {
		if strings.HasPrefix(verb, trimmed) {
			matches = append(matches, verb)
		}
	}
	return matches
}
