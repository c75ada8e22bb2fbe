package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tododiff/internal/engine"
	"github.com/nibzard/tododiff/internal/logging"
	"github.com/nibzard/tododiff/internal/parallel"
)

// mergeCommand merges two descendants of a base file and prints the
// result. Conflicts render with diff3 style markers; the exit status
// stays zero so the output can always be captured.
func mergeCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tododiff merge", flag.ContinueOnError)
	similarity := fs.Int("similarity", engine.DefaultSimilarity,
		"Minimum description similarity percentage for fuzzy matching, 100 disables it")
	workers := fs.Int("workers", 0, "Parse workers (0 = number of CPUs)")
	verbose := fs.Bool("verbose", false, "Log diagnostic details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("merge needs exactly three files, got %d", fs.NArg())
	}

	logger := logging.Default(*verbose)
	pool := parallel.NewPool(*workers)

	base, err := loadTasks(ctx, pool, fs.Arg(0))
	if err != nil {
		return err
	}
	left, err := loadTasks(ctx, pool, fs.Arg(1))
	if err != nil {
		return err
	}
	right, err := loadTasks(ctx, pool, fs.Arg(2))
	if err != nil {
		return err
	}

	entries := engine.Merge3(base, left, right, engine.Options{Similarity: *similarity})
	if engine.HasConflict(entries) {
		logger.Warn("merge produced conflicts")
	}

	_, err = fmt.Fprint(os.Stdout, engine.MergeToString(entries))
	return err
}
