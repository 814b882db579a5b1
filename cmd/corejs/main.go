// corejs - shapes, interchange text and CSS selectors from the shell
//
// Usage:
//
//	corejs area --width W --height H         Area of a rectangle
//	corejs area --radius R                   Area of a circle
//	corejs area --shape NAME [file]          Area of a shape read as JSON
//	corejs serialize [--from F] [--indent S] [file]
//	                                         Canonical interchange text
//	corejs convert [--from F] --to T [file]  Re-encode between codecs
//	corejs fingerprint [--from F] [file]     BLAKE3 fingerprint of the value
//	corejs selector [--explain] part...      Build a CSS selector
//	corejs version                           Print version info
//
// If no file is given, or the file is "-", input is read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env carries what every subcommand needs.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    Config
	log    *slog.Logger
}

type command func(e *env, args []string) error

var commands = map[string]command{
	"area":        cmdArea,
	"serialize":   cmdSerialize,
	"convert":     cmdConvert,
	"fingerprint": cmdFingerprint,
	"selector":    cmdSelector,
	"version":     cmdVersion,
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configPath, logLevel, logFormat string

	flagSet := pflag.NewFlagSet("corejs", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML config file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&logFormat, "log-format", "", "log format: text, json")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flagSet.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return errors.New("missing command")
	}

	name := rest[0]
	if name == "help" {
		printUsage(stderr, flagSet)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage(stderr, flagSet)
		return fmt.Errorf("unknown command: %s", name)
	}

	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		log:    newLogger(cfg.Log.Level, cfg.Log.Format, stderr).With("command", name),
	}
	e.log.Debug("config loaded", "path", configPath, "level", cfg.Log.Level, "format", cfg.Log.Format)

	return cmd(e, rest[1:])
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `corejs - shapes, interchange text and CSS selectors

Usage:
  corejs [global options] <command> [options] [args]

Commands:
  area          Area of a rectangle or circle
  serialize     Canonical interchange text of the input
  convert       Re-encode the input with another codec
  fingerprint   BLAKE3 fingerprint of the input's canonical text
  selector      Build a CSS selector from kind=text parts and combinators
  version       Print version info

Global options:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
	fmt.Fprint(w, `
Examples:
  corejs area --width 10 --height 20
  echo '{"b":1,"a":[true,null]}' | corejs serialize
  corejs convert --to yaml data.json
  corejs selector element=div id=main + element=table id=data
`)
}

// newFlagSet returns a subcommand flag set whose -h prints to stderr.
func newFlagSet(e *env, name, usage string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("corejs "+name, pflag.ContinueOnError)
	flagSet.SetOutput(e.stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: corejs %s %s\n\n", name, usage)
		fmt.Fprint(e.stderr, flagSet.FlagUsages())
	}
	return flagSet
}

// parseFlags parses args and reports whether the command should run.
func parseFlags(flagSet *pflag.FlagSet, args []string) (bool, error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// readInput reads the single optional file argument, or stdin.
func readInput(e *env, args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		return io.ReadAll(e.stdin)
	case 1:
		if args[0] == "-" {
			return io.ReadAll(e.stdin)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}
