package engine

import (
	"strings"
	"testing"
)

func TestMerge3(t *testing.T) {
	t.Run("identical sides pass through", func(t *testing.T) {
		base := parseAll("water the plants", "pay rent due:2018-04-01")
		out := MergeToString(Merge3(base, base, base, Options{}))
		want := "water the plants\npay rent due:2018-04-01\n"
		if out != want {
			t.Errorf("got %q, want %q", out, want)
		}
	})

	t.Run("one-sided change wins", func(t *testing.T) {
		base := parseAll("pay rent due:2018-04-01")
		left := parseAll("pay rent due:2018-04-08")
		right := parseAll("pay rent due:2018-04-01")

		entries := Merge3(base, left, right, Options{})
		if HasConflict(entries) {
			t.Fatalf("unexpected conflict: %+v", entries)
		}
		if out := MergeToString(entries); out != "pay rent due:2018-04-08\n" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("same change on both sides emits once", func(t *testing.T) {
		base := parseAll("pay rent due:2018-04-01")
		left := parseAll("pay rent due:2018-04-08")
		right := parseAll("pay rent due:2018-04-08")

		entries := Merge3(base, left, right, Options{})
		if HasConflict(entries) {
			t.Fatalf("unexpected conflict: %+v", entries)
		}
		if out := MergeToString(entries); out != "pay rent due:2018-04-08\n" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("diverging changes conflict", func(t *testing.T) {
		base := parseAll("pay rent due:2018-04-01")
		left := parseAll("pay rent due:2018-04-08")
		right := parseAll("(A) pay rent due:2018-04-01")

		entries := Merge3(base, left, right, Options{})
		if !HasConflict(entries) {
			t.Fatal("expected a conflict")
		}
		out := MergeToString(entries)
		for _, marker := range []string{"<<<<<", "|||||", "=====", ">>>>>"} {
			if !strings.Contains(out, marker) {
				t.Errorf("output missing marker %q:\n%s", marker, out)
			}
		}
		if !strings.Contains(out, "pay rent due:2018-04-08") ||
			!strings.Contains(out, "(A) pay rent due:2018-04-01") ||
			!strings.Contains(out, "pay rent due:2018-04-01") {
			t.Errorf("output missing a version:\n%s", out)
		}
	})

	t.Run("delete against no change wins", func(t *testing.T) {
		base := parseAll("water the plants", "pay rent")
		left := parseAll("pay rent")
		right := parseAll("water the plants", "pay rent")

		entries := Merge3(base, left, right, Options{})
		if HasConflict(entries) {
			t.Fatalf("unexpected conflict: %+v", entries)
		}
		if out := MergeToString(entries); out != "pay rent\n" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("delete against change conflicts", func(t *testing.T) {
		base := parseAll("pay rent due:2018-04-01")
		left := parseAll("pay rent due:2018-04-08")

		entries := Merge3(base, left, nil, Options{})
		if !HasConflict(entries) {
			t.Fatal("expected a conflict")
		}
	})

	t.Run("new tasks from both sides dedupe", func(t *testing.T) {
		base := parseAll("water the plants")
		left := parseAll("water the plants", "call mom", "shared addition")
		right := parseAll("water the plants", "shared addition", "file taxes")

		entries := Merge3(base, left, right, Options{})
		if HasConflict(entries) {
			t.Fatalf("unexpected conflict: %+v", entries)
		}
		out := MergeToString(entries)
		want := "water the plants\ncall mom\nshared addition\nfile taxes\n"
		if out != want {
			t.Errorf("got %q, want %q", out, want)
		}
	})

	t.Run("recurrence child follows its side", func(t *testing.T) {
		base := parseAll("water the plants due:2018-04-01 rec:1w")
		left := parseAll(
			"x 2018-03-23 water the plants due:2018-04-01 rec:1w",
			"water the plants due:2018-03-30 rec:1w",
		)
		right := parseAll("water the plants due:2018-04-01 rec:1w")

		entries := Merge3(base, left, right, Options{})
		if HasConflict(entries) {
			t.Fatalf("unexpected conflict: %+v", entries)
		}
		out := MergeToString(entries)
		if !strings.Contains(out, "x 2018-03-23 water the plants") ||
			!strings.Contains(out, "due:2018-03-30") {
			t.Errorf("child missing from merge:\n%s", out)
		}
	})
}
