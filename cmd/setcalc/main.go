package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sambeau/setcalc/config"
	"github.com/sambeau/setcalc/pkg/setcalc/logging"
	"github.com/sambeau/setcalc/pkg/setcalc/repl"
)

// Version is set at build time via -ldflags
var Version = "0.1.0-dev"

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main entry point, designed for testability (Mat Ryer pattern)
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("setcalc", flag.ContinueOnError)
	flags.SetOutput(io.Discard) // Suppress default -h output

	var (
		configPath  = flags.String("config", "", "Path to config file")
		limit       = flags.Int("limit", 0, "Capacity of the operation list (3-100); skips the startup prompt")
		noColor     = flags.Bool("no-color", false, "Disable coloured error output")
		logLevel    = flags.String("log-level", "", "Override logging level (debug, info, warn, error)")
		showVersion = flags.Bool("version", false, "Show version")
		showHelp    = flags.Bool("help", false, "Show help")
	)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return nil
		}
		printUsage(stderr)
		return err
	}

	if *showHelp {
		printUsage(stdout)
		return nil
	}

	if *showVersion {
		fmt.Fprintf(stdout, "setcalc version %s\n", Version)
		return nil
	}

	cfg, configFile, err := config.LoadWithPath(*configPath, getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply CLI overrides
	if *limit != 0 {
		cfg.Limit = *limit
	}
	if *noColor {
		cfg.Color = false
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	cfg.Scripts = append(cfg.Scripts, flags.Args()...)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logOut, closeLog, err := logging.OpenOutput(cfg.Logging.Output, stdout, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.New(logOut, level)

	if configFile != "" {
		logger.Infof("using config %s", configFile)
	}

	return repl.Start(ctx, stdin, stdout, repl.Options{
		Version:     Version,
		HistoryFile: cfg.History,
		Color:       cfg.Color,
		Limit:       cfg.Limit,
		Scripts:     cfg.Scripts,
		Logger:      logger,
		Printer:     cfg.Printer(),
	})
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `setcalc - interactive set calculator version %s

Usage:
  setcalc [options] [file...]

Files are replayed as command files before the first prompt.

Options:
  --config <path>      Path to config file (default: $SETCALC_CONFIG, ./setcalc.yaml,
                       ~/.config/setcalc/setcalc.yaml)
  --limit <n>          Capacity of the operation list (3-100); skips the startup prompt
  --no-color           Disable coloured error output
  --log-level <level>  Override logging level (debug, info, warn, error)
  --version            Show version
  --help               Show this help message

Commands (inside the calculator):
  eval num ...         Evaluate operation #num on the sets that follow
  uni|inter|diff|prod|comp num1 num2
                       Build a new operation from operations #num1 and #num2
  del num              Delete operation #num
  resize               Change the capacity of the operation list
  read path            Replay commands from a file
  help                 List the commands
  exit                 Leave the calculator
`, Version)
}
