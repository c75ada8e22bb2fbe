// Package engine matches tasks between two snapshots of a todo list and
// classifies what changed for each matched pair. It also derives
// recurrence children, new uncompleted tasks spawned by completing a
// recurring one, and attributes them to their parent pair.
package engine

import "github.com/nibzard/tododiff/internal/todotxt"

// Options tunes the diff. The zero value uses DefaultSimilarity.
type Options struct {
	// Similarity is the minimum percentage of shared description for
	// the fuzzy matching phase, between 1 and 100. 100 disables fuzzy
	// matching entirely.
	Similarity int
}

func (o Options) similarity() int {
	if o.Similarity <= 0 {
		return DefaultSimilarity
	}
	if o.Similarity > 100 {
		return 100
	}
	return o.Similarity
}

// Changeset is the full semantic difference between two snapshots.
type Changeset struct {
	// New holds after-tasks with no counterpart in the before snapshot,
	// in after order.
	New []todotxt.Task
	// Removed holds before-tasks with no counterpart in the after
	// snapshot, in before order.
	Removed []todotxt.Task
	// Pairs holds the matched tasks, in before order. Pairs with an
	// empty change list and no children are unchanged tasks.
	Pairs []Pair
}

// Pair is one matched before/after task with its classified changes.
type Pair struct {
	Before   todotxt.Task
	After    todotxt.Task
	Changes  []Change
	Children []Child
}

// Changed reports whether the pair carries any change at all.
func (p Pair) Changed() bool {
	return len(p.Changes) > 0 || len(p.Children) > 0
}

// Child is a new task spawned by completing a recurring parent. Its
// change list starts with the recurrence and continues with whatever
// else differs from the expected recurred task.
type Child struct {
	Task    todotxt.Task
	Changes []Change
}

// Diff computes the semantic difference between two snapshots. Both
// inputs are left untouched. The result is deterministic for identical
// inputs and options.
func Diff(before, after []todotxt.Task, opts Options) Changeset {
	a := analyze(before, after, opts)

	cs := Changeset{}
	for i := range a.pairs {
		cs.Pairs = append(cs.Pairs, a.pairs[i].Pair)
	}
	for _, ai := range a.newAfter {
		cs.New = append(cs.New, after[ai])
	}
	for _, bi := range a.removedBefore {
		cs.Removed = append(cs.Removed, before[bi])
	}
	return cs
}

// analysis is the index-level form of a diff, shared by Diff and Merge3.
type analysis struct {
	pairs         []indexedPair
	byBefore      map[int]*indexedPair
	newAfter      []int
	removedBefore []int
}

type indexedPair struct {
	Pair
	b, a int
}

func analyze(before, after []todotxt.Task, opts Options) analysis {
	m := matchTasks(before, after, opts.similarity())

	a := analysis{byBefore: make(map[int]*indexedPair, len(m.pairs))}
	parents := make([]*Pair, 0, len(m.pairs))
	for _, p := range m.pairs {
		a.pairs = append(a.pairs, indexedPair{
			Pair: Pair{
				Before:  before[p.b],
				After:   after[p.a],
				Changes: classify(before[p.b], after[p.a]),
			},
			b: p.b,
			a: p.a,
		})
	}
	for i := range a.pairs {
		a.byBefore[a.pairs[i].b] = &a.pairs[i]
		parents = append(parents, &a.pairs[i].Pair)
	}

	claimed := make(map[int]bool)
	for _, ai := range m.unmatchedAfter {
		if parent := findParent(parents, after[ai]); parent != nil {
			parent.Children = append(parent.Children, makeChild(*parent, after[ai]))
			claimed[ai] = true
		}
	}
	for _, ai := range m.unmatchedAfter {
		if !claimed[ai] {
			a.newAfter = append(a.newAfter, ai)
		}
	}
	a.removedBefore = m.unmatchedBefore
	return a
}

// findParent locates the matched pair a candidate recurrence child
// belongs to: the before side carries a rec tag with a due date, the
// after side is completed, the descriptions agree, and applying the
// recurrence yields exactly the child's due date. The first eligible
// pair wins and a pair adopts at most one child.
func findParent(parents []*Pair, child todotxt.Task) *Pair {
	if child.Due.IsZero() || child.Completed {
		return nil
	}
	for _, p := range parents {
		if len(p.Children) > 0 {
			continue
		}
		rec := p.Before.Rec
		if rec == nil || p.Before.Due.IsZero() || !p.After.Completed {
			continue
		}
		if p.Before.MatchKey() != child.MatchKey() {
			continue
		}
		base := childBase(rec, p.Before.Due, p.After.CompletionDate, child.CreationDate)
		if base.IsZero() || !rec.Apply(base).Equal(child.Due) {
			continue
		}
		return p
	}
	return nil
}

func childBase(rec *todotxt.Recurrence, due, completion, creation todotxt.Date) todotxt.Date {
	if rec.Strict {
		return due
	}
	if !completion.IsZero() {
		return completion
	}
	return creation
}

// makeChild builds the child's change list: the recurrence itself,
// followed by any drift between the task the recurrence should have
// produced and the task actually found.
func makeChild(parent Pair, child todotxt.Task) Child {
	base := childBase(parent.Before.Rec, parent.Before.Due, parent.After.CompletionDate, child.CreationDate)
	expected := recurredTask(parent.Before, parent.After, child, base)
	changes := []Change{{
		Kind:   KindRecurred,
		Strict: parent.Before.Rec.Strict,
		Date:   base,
	}}
	changes = append(changes, classify(expected, child)...)
	return Child{Task: child, Changes: changes}
}

// recurredTask builds the task a recurrence is expected to produce from
// a completed parent: uncompleted, due and threshold advanced, created
// on the completion date, with the parent's original priority restored.
// A child that carries no creation date is not charged with one.
func recurredTask(before, after, child todotxt.Task, base todotxt.Date) todotxt.Task {
	t := after
	t.Completed = false
	t.CompletionDate = todotxt.Date{}
	t.CreationDate = after.CompletionDate
	if t.CreationDate.IsZero() {
		t.CreationDate = before.CreationDate
	}
	if child.CreationDate.IsZero() {
		t.CreationDate = todotxt.Date{}
	}
	t.Priority = before.Priority
	t.Due = before.Rec.Apply(base)
	if !after.Threshold.IsZero() && !after.Due.IsZero() {
		t.Threshold = after.Threshold.AddDays(after.Due.DaysUntil(t.Due))
	}
	t.Raw = ""
	return t
}
