package engine

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/nibzard/tododiff/internal/todotxt"
)

// DefaultSimilarity is the percentage two descriptions must share for the
// fuzzy matching phase to pair them. 100 disables fuzzy matching.
const DefaultSimilarity = 75

// matchResult holds a 1:1 pairing between the before and after snapshots
// by index. Every index appears exactly once across the three slices of
// its side.
type matchResult struct {
	pairs           []pairIdx
	unmatchedBefore []int
	unmatchedAfter  []int
}

type pairIdx struct {
	b, a int
}

// matchTasks pairs tasks between the two snapshots. It groups both sides
// by normalized description key, pairs in order within groups of equal
// size, resolves uneven groups by greedy maximum-similarity assignment,
// and finally runs an optional fuzzy phase over the leftovers. The result
// is deterministic: all ties break on the lowest original index.
func matchTasks(before, after []todotxt.Task, similarity int) matchResult {
	groups := make(map[string]*keyGroup)
	var order []string
	group := func(key string) *keyGroup {
		g, ok := groups[key]
		if !ok {
			g = &keyGroup{}
			groups[key] = g
			order = append(order, key)
		}
		return g
	}
	for i, t := range before {
		g := group(t.MatchKey())
		g.before = append(g.before, i)
	}
	for i, t := range after {
		g := group(t.MatchKey())
		g.after = append(g.after, i)
	}

	var res matchResult
	for _, key := range order {
		g := groups[key]
		switch {
		case len(g.before) == len(g.after):
			for i := range g.before {
				res.pairs = append(res.pairs, pairIdx{b: g.before[i], a: g.after[i]})
			}
		default:
			matchGroup(&res, before, after, g)
		}
	}

	matchFuzzy(&res, before, after, similarity)

	sort.Slice(res.pairs, func(i, j int) bool { return res.pairs[i].b < res.pairs[j].b })
	sort.Ints(res.unmatchedBefore)
	sort.Ints(res.unmatchedAfter)
	return res
}

type keyGroup struct {
	before []int
	after  []int
}

// matchGroup resolves a key group with unequal counts by scoring every
// candidate pair and greedily assigning the highest scores first.
func matchGroup(res *matchResult, before, after []todotxt.Task, g *keyGroup) {
	type candidate struct {
		score int
		b, a  int
	}
	cands := make([]candidate, 0, len(g.before)*len(g.after))
	for _, bi := range g.before {
		for _, ai := range g.after {
			cands = append(cands, candidate{
				score: similarityScore(before[bi], after[ai]),
				b:     bi,
				a:     ai,
			})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].b != cands[j].b {
			return cands[i].b < cands[j].b
		}
		return cands[i].a < cands[j].a
	})

	usedB := make(map[int]bool, len(g.before))
	usedA := make(map[int]bool, len(g.after))
	for _, c := range cands {
		if usedB[c.b] || usedA[c.a] {
			continue
		}
		usedB[c.b] = true
		usedA[c.a] = true
		res.pairs = append(res.pairs, pairIdx{b: c.b, a: c.a})
	}
	for _, bi := range g.before {
		if !usedB[bi] {
			res.unmatchedBefore = append(res.unmatchedBefore, bi)
		}
	}
	for _, ai := range g.after {
		if !usedA[ai] {
			res.unmatchedAfter = append(res.unmatchedAfter, ai)
		}
	}
}

// similarityScore weighs field-by-field equality between two tasks that
// share a description key. Integer weights keep ordering exact.
func similarityScore(b, a todotxt.Task) int {
	s := 0
	if b.Priority == a.Priority {
		s += 20
	}
	s += dateAffinity(b.Due, a.Due, 30)
	s += dateAffinity(b.Threshold, a.Threshold, 16)
	s += overlapScore(b.Projects, a.Projects)
	s += overlapScore(b.Contexts, a.Contexts)
	// Kept mild: completing a task is an ordinary transition, so a
	// completed continuation with the same dates should still outrank
	// an uncompleted near-miss.
	if b.Completed != a.Completed {
		s -= 10
	}
	return s
}

// dateAffinity scores how close two optional dates are: full weight when
// equal, partial weight decaying with distance in days, a small weight
// when both are absent, nothing when only one side has a date.
func dateAffinity(x, y todotxt.Date, weight int) int {
	switch {
	case x.IsZero() && y.IsZero():
		return weight / 3
	case x.IsZero() || y.IsZero():
		return 0
	case x.Equal(y):
		return weight
	default:
		days := x.DaysUntil(y)
		if days < 0 {
			days = -days
		}
		if v := weight/2 - days; v > 0 {
			return v
		}
		return 0
	}
}

func overlapScore(a, b []string) int {
	in := func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	}
	s := 0
	for _, v := range a {
		if in(b, v) {
			s += 6
		} else {
			s -= 3
		}
	}
	for _, v := range b {
		if !in(a, v) {
			s -= 3
		}
	}
	return s
}

// matchFuzzy pairs leftover tasks whose descriptions differ but are
// within the similarity threshold, measured by Levenshtein distance over the
// normalized keys. Afters claim befores in order; ties break on distance,
// then the lowest before index.
func matchFuzzy(res *matchResult, before, after []todotxt.Task, similarity int) {
	divergence := 100 - similarity
	if divergence <= 0 || len(res.unmatchedBefore) == 0 || len(res.unmatchedAfter) == 0 {
		return
	}

	remainingB := append([]int(nil), res.unmatchedBefore...)
	var stillNew []int
	for _, ai := range res.unmatchedAfter {
		aKey := after[ai].MatchKey()
		best := -1
		bestDist := 0
		for _, bi := range remainingB {
			if before[bi].Opaque || after[ai].Opaque {
				continue
			}
			bKey := before[bi].MatchKey()
			if !admissible(bKey, aKey, divergence) {
				continue
			}
			dist := levenshtein.ComputeDistance(bKey, aKey)
			if dist*100 > divergence*len(aKey) {
				continue
			}
			if best == -1 || dist < bestDist {
				best, bestDist = bi, dist
			}
		}
		if best == -1 {
			stillNew = append(stillNew, ai)
			continue
		}
		res.pairs = append(res.pairs, pairIdx{b: best, a: ai})
		remainingB = removeInt(remainingB, best)
	}
	res.unmatchedBefore = remainingB
	res.unmatchedAfter = stillNew
}

// admissible is a cheap length prefilter: the Levenshtein distance is at
// least the difference of the lengths.
func admissible(bKey, aKey string, divergence int) bool {
	diff := len(aKey) - len(bKey)
	if diff < 0 {
		diff = -diff
	}
	return diff*100 <= divergence*len(aKey)
}

func removeInt(list []int, v int) []int {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
