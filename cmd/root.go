// Package cmd implements the CLI command structure for tododiff.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tododiff CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tododiff", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No explicit subcommand means diff.
	subcommand := "diff"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		switch remainingArgs[0] {
		case "diff", "merge", "tui", "version", "help":
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		default:
			// A file path as first arg starts a diff.
			if fi, err := os.Stat(remainingArgs[0]); err != nil || fi.IsDir() {
				fmt.Fprintf(os.Stderr, "Unknown command: %s\n", remainingArgs[0])
				printUsage(fs, os.Stderr)
				return fmt.Errorf("unknown command: %s", remainingArgs[0])
			}
		}
	}

	switch subcommand {
	case "diff":
		return diffCommand(ctx, remainingArgs)
	case "merge":
		return mergeCommand(ctx, remainingArgs)
	case "tui":
		return tuiCommand(ctx, remainingArgs)
	case "version":
		return versionCommand()
	default:
		printUsage(fs, os.Stdout)
		return nil
	}
}

func versionCommand() error {
	fmt.Printf("tododiff version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tododiff - A semantic diff for todo.txt files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tododiff [command] [options] <files>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  diff BEFORE AFTER      Show semantic changes between two files (default)")
	fmt.Fprintln(w, "  merge BASE LEFT RIGHT  Three-way merge two descendants of a base file")
	fmt.Fprintln(w, "  tui BEFORE AFTER       Browse the diff in a terminal UI")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diff Options (use with 'diff' command):")
	fmt.Fprintln(w, "  -similarity int")
	fmt.Fprintln(w, "        Minimum description similarity percentage for fuzzy matching,")
	fmt.Fprintln(w, "        100 disables it (default 75)")
	fmt.Fprintln(w, "  -removed")
	fmt.Fprintln(w, "        Show removed tasks (default true)")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|json) (default text)")
	fmt.Fprintln(w, "  -color string")
	fmt.Fprintln(w, "        Colorize output (auto|always|never) (default auto)")
	fmt.Fprintln(w, "  -workers int")
	fmt.Fprintln(w, "        Parse workers (0 = number of CPUs)")
	fmt.Fprintln(w, "  -verbose")
	fmt.Fprintln(w, "        Log diagnostic details to stderr")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merge Options (use with 'merge' command):")
	fmt.Fprintln(w, "  -similarity int")
	fmt.Fprintln(w, "        Minimum description similarity percentage for fuzzy matching (default 75)")
	fmt.Fprintln(w, "  -workers int")
	fmt.Fprintln(w, "        Parse workers (0 = number of CPUs)")
	fmt.Fprintln(w, "  -verbose")
	fmt.Fprintln(w, "        Log diagnostic details to stderr")
}
