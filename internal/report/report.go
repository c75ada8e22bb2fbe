// Package report turns a changeset into human and machine readable
// output. Tasks are grouped into four sections, each entry carrying the
// task line and one or more change phrases.
package report

import (
	"sort"

	"github.com/nibzard/tododiff/internal/engine"
	"github.com/nibzard/tododiff/internal/todotxt"
)

// Tone selects the color a section renders with.
type Tone int

const (
	ToneNew Tone = iota
	ToneRemoved
	ToneCompleted
	ToneChanged
)

// Section is one titled group of report entries.
type Section struct {
	Title   string
	Tone    Tone
	Entries []Entry
}

// Entry is one task with its change lines. Each inner change slice
// renders as a single joined phrase line.
type Entry struct {
	Task    todotxt.Task
	Changes [][]engine.Change
}

// Build groups a changeset into sections: new uncompleted tasks, removed
// tasks, completions (including brand-new completed tasks and recurred
// pairs), and everything else that changed. Unchanged pairs are dropped.
// Empty sections are omitted.
func Build(cs engine.Changeset, includeRemoved bool) []Section {
	var newSec, removedSec, completedSec, changedSec Section
	newSec = Section{Title: "New tasks", Tone: ToneNew}
	removedSec = Section{Title: "Removed tasks", Tone: ToneRemoved}
	completedSec = Section{Title: "Completed tasks", Tone: ToneCompleted}
	changedSec = Section{Title: "Changed tasks", Tone: ToneChanged}

	for _, t := range cs.New {
		if t.Completed {
			changes := []engine.Change{{Kind: engine.KindCreated}}
			if !t.CompletionDate.IsZero() {
				changes = append(changes, engine.Change{
					Kind: engine.KindCompleted,
					Date: t.CompletionDate,
				})
			}
			completedSec.Entries = append(completedSec.Entries, Entry{
				Task:    t,
				Changes: [][]engine.Change{changes},
			})
			continue
		}
		newSec.Entries = append(newSec.Entries, Entry{Task: t})
	}
	sort.SliceStable(newSec.Entries, func(i, j int) bool {
		a, b := newSec.Entries[i].Task.CreationDate, newSec.Entries[j].Task.CreationDate
		if a.IsZero() || b.IsZero() {
			return b.IsZero() && !a.IsZero()
		}
		return a.Before(b)
	})

	if includeRemoved {
		for _, t := range cs.Removed {
			removedSec.Entries = append(removedSec.Entries, Entry{Task: t})
		}
	}

	for _, p := range cs.Pairs {
		if !p.Changed() {
			continue
		}
		e := Entry{Task: p.Before}
		if len(p.Changes) > 0 {
			e.Changes = append(e.Changes, p.Changes)
		}
		for _, c := range p.Children {
			e.Changes = append(e.Changes, c.Changes)
		}
		if isCompletion(p) {
			completedSec.Entries = append(completedSec.Entries, e)
		} else {
			changedSec.Entries = append(changedSec.Entries, e)
		}
	}
	// Recurred parents read better ahead of plain completions.
	sort.SliceStable(completedSec.Entries, func(i, j int) bool {
		return hasRecurrence(completedSec.Entries[i]) && !hasRecurrence(completedSec.Entries[j])
	})

	var out []Section
	for _, s := range []Section{newSec, removedSec, completedSec, changedSec} {
		if len(s.Entries) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func isCompletion(p engine.Pair) bool {
	if len(p.Children) > 0 {
		return true
	}
	for _, c := range p.Changes {
		if c.IsCompletion() || c.IsRecurrence() {
			return true
		}
	}
	return false
}

func hasRecurrence(e Entry) bool {
	for _, line := range e.Changes {
		for _, c := range line {
			if c.IsRecurrence() {
				return true
			}
		}
	}
	return false
}
