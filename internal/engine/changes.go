package engine

import (
	"fmt"
	"strings"

	"github.com/nibzard/tododiff/internal/todotxt"
)

// Kind names one category of semantic change.
type Kind int

const (
	KindCreated Kind = iota
	KindCompleted
	KindUncompleted
	KindRecurred
	KindPostponed
	KindPriorityAdded
	KindPriorityRemoved
	KindPriorityChanged
	KindThresholdChanged
	KindCompletionDateChanged
	KindCreationDateChanged
	KindDescriptionChanged
	KindProjectsChanged
	KindContextsChanged
	KindTagChanged
	KindUnparsed
)

var kindNames = map[Kind]string{
	KindCreated:               "created",
	KindCompleted:             "completed",
	KindUncompleted:           "uncompleted",
	KindRecurred:              "recurred",
	KindPostponed:             "postponed",
	KindPriorityAdded:         "priority-added",
	KindPriorityRemoved:       "priority-removed",
	KindPriorityChanged:       "priority-changed",
	KindThresholdChanged:      "threshold-changed",
	KindCompletionDateChanged: "completion-date-changed",
	KindCreationDateChanged:   "creation-date-changed",
	KindDescriptionChanged:    "description-changed",
	KindProjectsChanged:       "projects-changed",
	KindContextsChanged:       "contexts-changed",
	KindTagChanged:            "tag-changed",
	KindUnparsed:              "unparsed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Change is one semantic change descriptor. Which fields are meaningful
// depends on Kind:
//
//	Completed               Date (may be zero when the line had no date)
//	Recurred                Strict, Date (strict: the old due date;
//	                        otherwise the completion date recurred from)
//	Postponed               Strict, DeltaDays, FromDate, ToDate (either
//	                        date may be zero for an added/removed due)
//	Priority*               From, To (single letters)
//	ThresholdChanged        FromDate, ToDate
//	CompletionDateChanged   FromDate, ToDate
//	CreationDateChanged     FromDate, ToDate
//	DescriptionChanged      From, To
//	Projects/ContextsChanged Added, Removed
//	TagChanged              Key, From, To (empty = absent)
type Change struct {
	Kind      Kind
	Strict    bool
	Date      todotxt.Date
	DeltaDays int
	FromDate  todotxt.Date
	ToDate    todotxt.Date
	From      string
	To        string
	Key       string
	Added     []string
	Removed   []string
}

// String is a compact, stable form used by tests and verbose logging.
func (c Change) String() string {
	switch c.Kind {
	case KindCreated:
		return "created"
	case KindCompleted:
		if c.Date.IsZero() {
			return "completed"
		}
		return fmt.Sprintf("completed(%s)", c.Date)
	case KindUncompleted:
		return "uncompleted"
	case KindRecurred:
		if c.Strict {
			return fmt.Sprintf("recurred(strict,from=%s)", c.Date)
		}
		return fmt.Sprintf("recurred(from=%s)", c.Date)
	case KindPostponed:
		switch {
		case c.FromDate.IsZero():
			return fmt.Sprintf("due-added(%s)", c.ToDate)
		case c.ToDate.IsZero():
			return fmt.Sprintf("due-removed(%s)", c.FromDate)
		case c.Strict:
			return fmt.Sprintf("postponed(strict,%+dd)", c.DeltaDays)
		default:
			return fmt.Sprintf("postponed(%+dd)", c.DeltaDays)
		}
	case KindPriorityAdded:
		return fmt.Sprintf("priority-added(%s)", c.To)
	case KindPriorityRemoved:
		return fmt.Sprintf("priority-removed(%s)", c.From)
	case KindPriorityChanged:
		return fmt.Sprintf("priority(%s->%s)", c.From, c.To)
	case KindThresholdChanged:
		return fmt.Sprintf("threshold(%s->%s)", dateOrDash(c.FromDate), dateOrDash(c.ToDate))
	case KindCompletionDateChanged:
		return fmt.Sprintf("completion-date(%s->%s)", dateOrDash(c.FromDate), dateOrDash(c.ToDate))
	case KindCreationDateChanged:
		return fmt.Sprintf("creation-date(%s->%s)", dateOrDash(c.FromDate), dateOrDash(c.ToDate))
	case KindDescriptionChanged:
		return fmt.Sprintf("description(%q->%q)", c.From, c.To)
	case KindProjectsChanged:
		return fmt.Sprintf("projects(+%s,-%s)", strings.Join(c.Added, ","), strings.Join(c.Removed, ","))
	case KindContextsChanged:
		return fmt.Sprintf("contexts(+%s,-%s)", strings.Join(c.Added, ","), strings.Join(c.Removed, ","))
	case KindTagChanged:
		switch {
		case c.From == "":
			return fmt.Sprintf("tag(+%s:%s)", c.Key, c.To)
		case c.To == "":
			return fmt.Sprintf("tag(-%s:%s)", c.Key, c.From)
		default:
			return fmt.Sprintf("tag(%s:%s->%s)", c.Key, c.From, c.To)
		}
	case KindUnparsed:
		return "unparsed"
	}
	return c.Kind.String()
}

// IsCompletion reports whether the change marks the task completed.
func (c Change) IsCompletion() bool {
	return c.Kind == KindCompleted
}

// IsRecurrence reports whether the change is a recurrence step.
func (c Change) IsRecurrence() bool {
	return c.Kind == KindRecurred
}

func dateOrDash(d todotxt.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}
