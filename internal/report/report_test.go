package report

import (
	"testing"

	"github.com/nibzard/tododiff/internal/engine"
	"github.com/nibzard/tododiff/internal/todotxt"
)

func diffLines(t *testing.T, before, after []string) engine.Changeset {
	t.Helper()
	parse := func(lines []string) []todotxt.Task {
		out := make([]todotxt.Task, len(lines))
		for i, l := range lines {
			out[i] = todotxt.Parse(l)
		}
		return out
	}
	return engine.Diff(parse(before), parse(after), engine.Options{})
}

func sectionTitles(sections []Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Title)
	}
	return out
}

func TestBuildSections(t *testing.T) {
	cs := diffLines(t,
		[]string{
			"old chore",
			"(A) change me",
			"water the plants due:2018-04-01 rec:1w",
			"untouched task",
		},
		[]string{
			"(B) change me",
			"x 2018-03-23 water the plants due:2018-04-01 rec:1w",
			"water the plants due:2018-03-30 rec:1w",
			"untouched task",
			"2018-03-25 fresh task",
			"x 2018-03-24 done on arrival",
		},
	)

	sections := Build(cs, true)
	want := []string{"New tasks", "Removed tasks", "Completed tasks", "Changed tasks"}
	got := sectionTitles(sections)
	if len(got) != len(want) {
		t.Fatalf("sections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sections = %v, want %v", got, want)
		}
	}

	byTitle := make(map[string]Section)
	for _, s := range sections {
		byTitle[s.Title] = s
	}

	if n := len(byTitle["New tasks"].Entries); n != 1 {
		t.Errorf("New tasks has %d entries, want 1", n)
	}
	if n := len(byTitle["Removed tasks"].Entries); n != 1 {
		t.Errorf("Removed tasks has %d entries, want 1", n)
	}
	// The recurred pair and the already-completed new task.
	if n := len(byTitle["Completed tasks"].Entries); n != 2 {
		t.Errorf("Completed tasks has %d entries, want 2", n)
	}
	if n := len(byTitle["Changed tasks"].Entries); n != 1 {
		t.Errorf("Changed tasks has %d entries, want 1", n)
	}

	// Recurred parents sort ahead of plain completions.
	first := byTitle["Completed tasks"].Entries[0]
	if !hasRecurrence(first) {
		t.Errorf("first completed entry should be the recurred parent, got %q", first.Task.Render())
	}
}

func TestBuildRemovedToggle(t *testing.T) {
	cs := diffLines(t, []string{"old chore"}, nil)

	if sections := Build(cs, true); len(sections) != 1 || sections[0].Title != "Removed tasks" {
		t.Errorf("with removed: %v", sectionTitles(sections))
	}
	if sections := Build(cs, false); len(sections) != 0 {
		t.Errorf("without removed: %v", sectionTitles(sections))
	}
}

func TestBuildSortsNewByCreationDate(t *testing.T) {
	cs := diffLines(t, nil, []string{
		"2018-03-25 second",
		"undated task",
		"2018-03-20 first",
	})

	sections := Build(cs, true)
	if len(sections) != 1 {
		t.Fatalf("sections = %v", sectionTitles(sections))
	}
	var got []string
	for _, e := range sections[0].Entries {
		got = append(got, e.Task.Description)
	}
	want := []string{"first", "second", "undated task"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("new order = %v, want %v", got, want)
			break
		}
	}
}

func TestBuildUnchangedIsEmpty(t *testing.T) {
	cs := diffLines(t, []string{"same task"}, []string{"same task"})
	if sections := Build(cs, true); len(sections) != 0 {
		t.Errorf("sections = %v, want none", sectionTitles(sections))
	}
}
