package engine

import "github.com/nibzard/tododiff/internal/todotxt"

// classify produces the ordered change list for a matched pair. The
// emission order is fixed: completion state first, then recurrence or
// postponement of the due date, then priority, threshold, creation date,
// description, projects, contexts and finally tags. Field changes
// explained by a higher-level change are absorbed by it.
func classify(before, after todotxt.Task) []Change {
	if before.Opaque || after.Opaque {
		if before.Raw == after.Raw {
			return nil
		}
		return []Change{{Kind: KindUnparsed}}
	}

	var out []Change

	completedNow := false
	switch {
	case !before.Completed && after.Completed:
		completedNow = true
		out = append(out, Change{Kind: KindCompleted, Date: after.CompletionDate})
	case before.Completed && !after.Completed:
		out = append(out, Change{Kind: KindUncompleted})
	case before.Completed && after.Completed && !before.CompletionDate.Equal(after.CompletionDate):
		out = append(out, Change{
			Kind:     KindCompletionDateChanged,
			FromDate: before.CompletionDate,
			ToDate:   after.CompletionDate,
		})
	}

	recurred := false
	dueHandled := false
	thresholdHandled := false
	if c, ok := recurrenceChange(before, after); ok {
		recurred = true
		dueHandled = true
		thresholdHandled = thresholdFollowsDue(before, after)
		out = append(out, c)
	}

	if !dueHandled && !before.Due.Equal(after.Due) {
		c := Change{Kind: KindPostponed, FromDate: before.Due, ToDate: after.Due}
		if !before.Due.IsZero() && !after.Due.IsZero() {
			c.DeltaDays = before.Due.DaysUntil(after.Due)
			if thresholdFollowsDue(before, after) {
				c.Strict = true
				thresholdHandled = true
			}
		}
		out = append(out, c)
	}

	switch {
	case before.Priority == after.Priority:
	case before.Priority == 0:
		out = append(out, Change{Kind: KindPriorityAdded, To: string(after.Priority)})
	case after.Priority == 0:
		// Losing the priority while completing is part of completing.
		if !completedNow {
			out = append(out, Change{Kind: KindPriorityRemoved, From: string(before.Priority)})
		}
	default:
		out = append(out, Change{
			Kind: KindPriorityChanged,
			From: string(before.Priority),
			To:   string(after.Priority),
		})
	}

	if !thresholdHandled && !before.Threshold.Equal(after.Threshold) {
		out = append(out, Change{
			Kind:     KindThresholdChanged,
			FromDate: before.Threshold,
			ToDate:   after.Threshold,
		})
	}

	if !recurred && !before.CreationDate.Equal(after.CreationDate) {
		out = append(out, Change{
			Kind:     KindCreationDateChanged,
			FromDate: before.CreationDate,
			ToDate:   after.CreationDate,
		})
	}

	if before.Description != after.Description {
		out = append(out, Change{
			Kind: KindDescriptionChanged,
			From: before.Description,
			To:   after.Description,
		})
	}

	if added, removed, changed := diffStrings(before.Projects, after.Projects); changed {
		out = append(out, Change{Kind: KindProjectsChanged, Added: added, Removed: removed})
	}
	if added, removed, changed := diffStrings(before.Contexts, after.Contexts); changed {
		out = append(out, Change{Kind: KindContextsChanged, Added: added, Removed: removed})
	}

	out = append(out, diffTags(before.Tags, after.Tags)...)
	return out
}

// recurrenceChange reports an in-place recurrence: the task completed in
// this diff, both sides carry the same rec tag, the due date moved, and
// the new due date is exactly what the recurrence yields. Strict
// recurrences advance from the old due date; non-strict ones advance
// from the completion date, falling back to the creation date. Without a
// completion the due movement is an ordinary postponement, even when it
// lands on the recurrence cadence.
func recurrenceChange(before, after todotxt.Task) (Change, bool) {
	if before.Completed || !after.Completed {
		return Change{}, false
	}
	if before.Rec == nil || !before.Rec.Equal(after.Rec) {
		return Change{}, false
	}
	if before.Due.IsZero() || after.Due.IsZero() || before.Due.Equal(after.Due) {
		return Change{}, false
	}
	base := recurrenceBase(before.Rec, before.Due, after)
	if base.IsZero() || !before.Rec.Apply(base).Equal(after.Due) {
		return Change{}, false
	}
	return Change{
		Kind:   KindRecurred,
		Strict: before.Rec.Strict,
		Date:   base,
	}, true
}

// recurrenceBase picks the date a recurrence advances from.
func recurrenceBase(rec *todotxt.Recurrence, due todotxt.Date, after todotxt.Task) todotxt.Date {
	if rec.Strict {
		return due
	}
	if !after.CompletionDate.IsZero() {
		return after.CompletionDate
	}
	return after.CreationDate
}

// thresholdFollowsDue reports whether the threshold moved coherently with
// the due date: either both sides lack a threshold, or the threshold
// shifted by the same number of days as the due date.
func thresholdFollowsDue(before, after todotxt.Task) bool {
	if before.Threshold.IsZero() && after.Threshold.IsZero() {
		return true
	}
	if before.Threshold.IsZero() || after.Threshold.IsZero() {
		return false
	}
	if before.Due.IsZero() || after.Due.IsZero() {
		return false
	}
	return before.Threshold.DaysUntil(after.Threshold) == before.Due.DaysUntil(after.Due)
}

// diffStrings computes the one-sided additions and removals between two
// ordered lists.
func diffStrings(before, after []string) (added, removed []string, changed bool) {
	in := func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	}
	for _, v := range after {
		if !in(before, v) {
			added = append(added, v)
		}
	}
	for _, v := range before {
		if !in(after, v) {
			removed = append(removed, v)
		}
	}
	return added, removed, len(added) > 0 || len(removed) > 0
}

// diffTags emits one change per tag key whose value differs, in the order
// the keys first appear across both sides.
func diffTags(before, after []todotxt.Tag) []Change {
	var keys []string
	seen := make(map[string]bool)
	for _, t := range before {
		if !seen[t.Key] {
			seen[t.Key] = true
			keys = append(keys, t.Key)
		}
	}
	for _, t := range after {
		if !seen[t.Key] {
			seen[t.Key] = true
			keys = append(keys, t.Key)
		}
	}

	lookup := func(tags []todotxt.Tag, key string) (string, bool) {
		for _, t := range tags {
			if t.Key == key {
				return t.Value, true
			}
		}
		return "", false
	}

	var out []Change
	for _, key := range keys {
		bv, bok := lookup(before, key)
		av, aok := lookup(after, key)
		if bok == aok && bv == av {
			continue
		}
		out = append(out, Change{Kind: KindTagChanged, Key: key, From: bv, To: av})
	}
	return out
}
