package engine

import (
	"strings"

	"github.com/nibzard/tododiff/internal/todotxt"
)

// MergeEntry is one unit of merge output: either a resolved run of tasks
// or a three-way conflict to be rendered with markers.
type MergeEntry struct {
	Conflict bool
	// Tasks holds the resolved tasks when Conflict is false.
	Tasks []todotxt.Task
	// Base, Left and Right hold the three conflicting versions of a
	// task when Conflict is true. Any of them may be empty when the
	// corresponding side deleted the task.
	Base  []todotxt.Task
	Left  []todotxt.Task
	Right []todotxt.Task
}

// Merge3 merges two descendants of a common base snapshot. A task edited
// on one side only takes that side's edit; a task edited identically on
// both sides is emitted once; diverging edits (or an edit against a
// deletion) become a conflict entry. New tasks from either side are
// appended after the base-derived entries, tasks added identically on
// both sides only once.
func Merge3(base, left, right []todotxt.Task, opts Options) []MergeEntry {
	al := analyze(base, left, opts)
	ar := analyze(base, right, opts)

	var out []MergeEntry
	for bi := range base {
		fl := fateOf(al, left, bi)
		fr := fateOf(ar, right, bi)
		out = appendMerged(out, base[bi], fl, fr)
	}

	seen := make(map[string]bool)
	var fresh []todotxt.Task
	for _, ai := range al.newAfter {
		fresh = append(fresh, left[ai])
		seen[left[ai].Render()] = true
	}
	for _, ai := range ar.newAfter {
		if !seen[right[ai].Render()] {
			fresh = append(fresh, right[ai])
		}
	}
	if len(fresh) > 0 {
		out = append(out, MergeEntry{Tasks: fresh})
	}
	return out
}

// fate describes what one side did to a base task.
type fate struct {
	deleted bool
	changed bool
	// tasks is the side's version of the base task, the matched after
	// task followed by any recurrence children. Empty when deleted.
	tasks []todotxt.Task
}

func fateOf(a analysis, side []todotxt.Task, baseIdx int) fate {
	p, ok := a.byBefore[baseIdx]
	if !ok {
		return fate{deleted: true}
	}
	f := fate{
		changed: p.Changed(),
		tasks:   []todotxt.Task{side[p.a]},
	}
	for _, c := range p.Children {
		f.tasks = append(f.tasks, c.Task)
	}
	return f
}

func appendMerged(out []MergeEntry, base todotxt.Task, fl, fr fate) []MergeEntry {
	switch {
	case fl.deleted && fr.deleted:
		return out
	case fl.deleted:
		if !fr.changed {
			return out
		}
		return append(out, MergeEntry{
			Conflict: true,
			Base:     []todotxt.Task{base},
			Right:    fr.tasks,
		})
	case fr.deleted:
		if !fl.changed {
			return out
		}
		return append(out, MergeEntry{
			Conflict: true,
			Base:     []todotxt.Task{base},
			Left:     fl.tasks,
		})
	case !fl.changed:
		return append(out, MergeEntry{Tasks: fr.tasks})
	case !fr.changed:
		return append(out, MergeEntry{Tasks: fl.tasks})
	case sameTasks(fl.tasks, fr.tasks):
		return append(out, MergeEntry{Tasks: fl.tasks})
	default:
		return append(out, MergeEntry{
			Conflict: true,
			Base:     []todotxt.Task{base},
			Left:     fl.tasks,
			Right:    fr.tasks,
		})
	}
}

func sameTasks(a, b []todotxt.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// HasConflict reports whether any entry is a conflict.
func HasConflict(entries []MergeEntry) bool {
	for _, e := range entries {
		if e.Conflict {
			return true
		}
	}
	return false
}

// Conflict marker lines.
const (
	markerLeft  = "<<<<<"
	markerBase  = "|||||"
	markerSplit = "====="
	markerRight = ">>>>>"
)

// MergeToString renders merge entries as todo.txt lines, conflicts in
// diff3 style with the base version between the two sides.
func MergeToString(entries []MergeEntry) string {
	var b strings.Builder
	writeTasks := func(tasks []todotxt.Task) {
		for _, t := range tasks {
			b.WriteString(t.Render())
			b.WriteByte('\n')
		}
	}
	for _, e := range entries {
		if !e.Conflict {
			writeTasks(e.Tasks)
			continue
		}
		b.WriteString(markerLeft + "\n")
		writeTasks(e.Left)
		b.WriteString(markerBase + "\n")
		writeTasks(e.Base)
		b.WriteString(markerSplit + "\n")
		writeTasks(e.Right)
		b.WriteString(markerRight + "\n")
	}
	return b.String()
}
