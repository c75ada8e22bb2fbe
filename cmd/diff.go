package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tododiff/internal/engine"
	"github.com/nibzard/tododiff/internal/logging"
	"github.com/nibzard/tododiff/internal/parallel"
	"github.com/nibzard/tododiff/internal/report"
	"github.com/nibzard/tododiff/internal/todotxt"
	"github.com/nibzard/tododiff/internal/ui"
)

// diffCommand compares two todo.txt files and prints the report.
func diffCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tododiff diff", flag.ContinueOnError)
	similarity := fs.Int("similarity", engine.DefaultSimilarity,
		"Minimum description similarity percentage for fuzzy matching, 100 disables it")
	removed := fs.Bool("removed", true, "Show removed tasks")
	format := fs.String("format", "text", "Output format (text|json)")
	color := fs.String("color", "auto", "Colorize output (auto|always|never)")
	workers := fs.Int("workers", 0, "Parse workers (0 = number of CPUs)")
	verbose := fs.Bool("verbose", false, "Log diagnostic details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff needs exactly two files, got %d", fs.NArg())
	}
	if *similarity < 1 || *similarity > 100 {
		return fmt.Errorf("similarity must be between 1 and 100, got %d", *similarity)
	}

	logger := logging.Default(*verbose)

	before, after, err := loadPair(ctx, logger, *workers, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	cs := engine.Diff(before, after, engine.Options{Similarity: *similarity})
	sections := report.Build(cs, *removed)
	logger.Debug("diff computed",
		"pairs", len(cs.Pairs), "new", len(cs.New), "removed", len(cs.Removed))

	switch *format {
	case "text":
		return report.WriteText(os.Stdout, sections, report.TextOptions{
			Color: colorEnabled(*color),
		})
	case "json":
		return report.WriteJSON(os.Stdout, sections)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", *format)
	}
}

// tuiCommand compares two files and opens the report in the viewer.
func tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tododiff tui", flag.ContinueOnError)
	similarity := fs.Int("similarity", engine.DefaultSimilarity,
		"Minimum description similarity percentage for fuzzy matching, 100 disables it")
	removed := fs.Bool("removed", true, "Show removed tasks")
	workers := fs.Int("workers", 0, "Parse workers (0 = number of CPUs)")
	verbose := fs.Bool("verbose", false, "Log diagnostic details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("tui needs exactly two files, got %d", fs.NArg())
	}

	logger := logging.Default(*verbose)

	before, after, err := loadPair(ctx, logger, *workers, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	cs := engine.Diff(before, after, engine.Options{Similarity: *similarity})
	sections := report.Build(cs, *removed)
	return ui.RunViewer(ctx, sections)
}

// loadPair loads and parses the two snapshots with a shared pool.
func loadPair(ctx context.Context, logger *log.Logger, workers int, beforePath, afterPath string) ([]todotxt.Task, []todotxt.Task, error) {
	pool := parallel.NewPool(workers)
	logger.Debug("parsing snapshots", "workers", pool.Workers())

	before, err := loadTasks(ctx, pool, beforePath)
	if err != nil {
		return nil, nil, err
	}
	after, err := loadTasks(ctx, pool, afterPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("parsed snapshots", "before", len(before), "after", len(after))
	return before, after, nil
}

// loadTasks reads a todo.txt file into tasks, skipping blank lines.
func loadTasks(ctx context.Context, pool *parallel.Pool, path string) ([]todotxt.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	tasks, err := pool.ParseLines(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tasks, nil
}

func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return ui.IsTTY(os.Stdout) && os.Getenv("TERM") != "dumb"
	}
}
