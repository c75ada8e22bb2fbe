package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tododiff/internal/engine"
)

var (
	styleNew       = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleRemoved   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	styleChanged   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleTask      = lipgloss.NewStyle()
	styleDetail    = lipgloss.NewStyle().Faint(true)
)

func toneStyle(t Tone) lipgloss.Style {
	switch t {
	case ToneNew:
		return styleNew
	case ToneRemoved:
		return styleRemoved
	case ToneCompleted:
		return styleCompleted
	default:
		return styleChanged
	}
}

// TextOptions controls the plain renderer.
type TextOptions struct {
	// Color enables ANSI styling of section titles and change lines.
	Color bool
}

// WriteText renders sections as indented text. An empty report renders
// as a single "No changes." line.
func WriteText(w io.Writer, sections []Section, opts TextOptions) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "No changes.")
		return err
	}

	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	for i, sec := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, style(toneStyle(sec.Tone), sec.Title+":")); err != nil {
			return err
		}
		for _, e := range sec.Entries {
			if _, err := fmt.Fprintf(w, "→ %s\n", style(styleTask, e.Task.Render())); err != nil {
				return err
			}
			for _, line := range e.Changes {
				if _, err := fmt.Fprintf(w, "    %s\n", style(styleDetail, ChangeLine(line))); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ChangeLine joins a change list into one sentence, the first word
// capitalized: "Completed on 2018-03-23 and recurred (from 2018-03-23)".
func ChangeLine(changes []engine.Change) string {
	phrases := make([]string, 0, len(changes))
	for _, c := range changes {
		phrases = append(phrases, phrase(c))
	}
	return capitalize(joinPhrases(phrases))
}

func phrase(c engine.Change) string {
	switch c.Kind {
	case engine.KindCreated:
		return "created"
	case engine.KindCompleted:
		if c.Date.IsZero() {
			return "completed"
		}
		return fmt.Sprintf("completed on %s", c.Date)
	case engine.KindUncompleted:
		return "uncompleted"
	case engine.KindCompletionDateChanged:
		return datePhrase("completion date", c)
	case engine.KindRecurred:
		if c.Strict {
			return fmt.Sprintf("recurred (strictly from %s)", c.Date)
		}
		return fmt.Sprintf("recurred (from %s)", c.Date)
	case engine.KindPostponed:
		switch {
		case c.FromDate.IsZero():
			return fmt.Sprintf("added due date %s", c.ToDate)
		case c.ToDate.IsZero():
			return fmt.Sprintf("removed due date %s", c.FromDate)
		case c.Strict:
			return fmt.Sprintf("postponed (strictly) by %s", dayCount(c.DeltaDays))
		default:
			return fmt.Sprintf("postponed by %s", dayCount(c.DeltaDays))
		}
	case engine.KindPriorityAdded:
		return fmt.Sprintf("added priority (%s)", c.To)
	case engine.KindPriorityRemoved:
		return fmt.Sprintf("removed priority (%s)", c.From)
	case engine.KindPriorityChanged:
		return fmt.Sprintf("changed priority from (%s) to (%s)", c.From, c.To)
	case engine.KindThresholdChanged:
		return datePhrase("threshold date", c)
	case engine.KindCreationDateChanged:
		return datePhrase("creation date", c)
	case engine.KindDescriptionChanged:
		return fmt.Sprintf("changed description to %q", c.To)
	case engine.KindProjectsChanged:
		return listPhrase("project", "+", c)
	case engine.KindContextsChanged:
		return listPhrase("context", "@", c)
	case engine.KindTagChanged:
		switch {
		case c.From == "":
			return fmt.Sprintf("added tag %s:%s", c.Key, c.To)
		case c.To == "":
			return fmt.Sprintf("removed tag %s:%s", c.Key, c.From)
		default:
			return fmt.Sprintf("changed tag %s from %s to %s", c.Key, c.From, c.To)
		}
	case engine.KindUnparsed:
		return "changed an unparseable line"
	default:
		return c.Kind.String()
	}
}

func datePhrase(what string, c engine.Change) string {
	switch {
	case c.FromDate.IsZero():
		return fmt.Sprintf("added %s %s", what, c.ToDate)
	case c.ToDate.IsZero():
		return fmt.Sprintf("removed %s %s", what, c.FromDate)
	default:
		return fmt.Sprintf("changed %s from %s to %s", what, c.FromDate, c.ToDate)
	}
}

func listPhrase(what, sigil string, c engine.Change) string {
	decorate := func(items []string) []string {
		out := make([]string, len(items))
		for i, s := range items {
			out[i] = sigil + s
		}
		return out
	}
	var parts []string
	if len(c.Added) > 0 {
		parts = append(parts, fmt.Sprintf("added %s %s", pluralize(what, len(c.Added)),
			strings.Join(decorate(c.Added), ", ")))
	}
	if len(c.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("removed %s %s", pluralize(what, len(c.Removed)),
			strings.Join(decorate(c.Removed), ", ")))
	}
	return joinPhrases(parts)
}

func pluralize(what string, n int) string {
	if n == 1 {
		return what
	}
	return what + "s"
}

func dayCount(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d day", n)
	}
	return fmt.Sprintf("%d days", n)
}

// joinPhrases joins like prose: "a", "a and b", "a, b and c".
func joinPhrases(phrases []string) string {
	switch len(phrases) {
	case 0:
		return ""
	case 1:
		return phrases[0]
	default:
		return strings.Join(phrases[:len(phrases)-1], ", ") + " and " + phrases[len(phrases)-1]
	}
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
