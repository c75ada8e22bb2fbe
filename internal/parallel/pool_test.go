package parallel

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/tododiff/internal/todotxt"
)

func TestParseLinesPreservesOrder(t *testing.T) {
	lines := make([]string, 1000)
	for i := range lines {
		lines[i] = fmt.Sprintf("task number %d due:2024-01-02", i)
	}

	pool := NewPool(8)
	tasks, err := pool.ParseLines(context.Background(), lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(tasks) != len(lines) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(lines))
	}
	for i, task := range tasks {
		want := fmt.Sprintf("task number %d", i)
		if task.Description != want {
			t.Fatalf("task %d: got description %q, want %q", i, task.Description, want)
		}
	}
}

func TestParseLinesMatchesSequential(t *testing.T) {
	lines := []string{
		"x 2018-03-23 water the plants @home",
		"(A) 2018-03-20 call mom +family due:2018-03-25",
		"",
		"just some text",
	}

	want := make([]todotxt.Task, len(lines))
	for i, l := range lines {
		want[i] = todotxt.Parse(l)
	}

	pool := NewPool(3)
	got, err := pool.ParseLines(context.Background(), lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parallel parse differs from sequential (-want +got):\n%s", diff)
	}
}

func TestParseLinesEmpty(t *testing.T) {
	pool := NewPool(0)
	tasks, err := pool.ParseLines(context.Background(), nil)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("got %d tasks, want 0", len(tasks))
	}
	if pool.Workers() <= 0 {
		t.Errorf("Workers() = %d, want a positive default", pool.Workers())
	}
}

func TestParseLinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := make([]string, 10000)
	for i := range lines {
		lines[i] = "some task"
	}

	pool := NewPool(1)
	if _, err := pool.ParseLines(ctx, lines); err == nil {
		t.Skip("all chunks were fed before cancellation was observed")
	}
}
