package todotxt

import (
	"fmt"
	"strconv"
)

// Recurrence is a parsed rec: tag value such as "1w" or "+2m". Strict
// recurrences (leading +) advance from the original due date; non-strict
// ones advance from the completion date.
type Recurrence struct {
	Strict bool
	Amount int
	Unit   byte // 'd', 'w', 'm' or 'y'
}

// ParseRecurrence parses a recurrence spec. The amount must be a positive
// integer and the unit one of d, w, m, y.
func ParseRecurrence(s string) (Recurrence, error) {
	orig := s
	var r Recurrence
	if len(s) > 0 && s[0] == '+' {
		r.Strict = true
		s = s[1:]
	}
	if len(s) < 2 {
		return Recurrence{}, fmt.Errorf("parse recurrence %q: too short", orig)
	}
	r.Unit = s[len(s)-1]
	switch r.Unit {
	case 'd', 'w', 'm', 'y':
	default:
		return Recurrence{}, fmt.Errorf("parse recurrence %q: unknown unit %q", orig, string(r.Unit))
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return Recurrence{}, fmt.Errorf("parse recurrence %q: invalid amount", orig)
	}
	r.Amount = n
	return r, nil
}

// Apply returns the date one recurrence interval after base.
func (r Recurrence) Apply(base Date) Date {
	switch r.Unit {
	case 'd':
		return base.AddDays(r.Amount)
	case 'w':
		return base.AddDays(7 * r.Amount)
	case 'm':
		return base.AddMonths(r.Amount)
	case 'y':
		return base.AddMonths(12 * r.Amount)
	}
	return base
}

// Equal reports whether two recurrence specs are identical. Either side
// may be nil.
func (r *Recurrence) Equal(o *Recurrence) bool {
	if r == nil || o == nil {
		return r == o
	}
	return *r == *o
}

func (r Recurrence) String() string {
	s := strconv.Itoa(r.Amount) + string(r.Unit)
	if r.Strict {
		return "+" + s
	}
	return s
}
