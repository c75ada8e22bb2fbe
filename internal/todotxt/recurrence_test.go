package todotxt

import "testing"

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		in     string
		strict bool
		amount int
		unit   byte
	}{
		{"1d", false, 1, 'd'},
		{"+1d", true, 1, 'd'},
		{"2w", false, 2, 'w'},
		{"+3m", true, 3, 'm'},
		{"10y", false, 10, 'y'},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRecurrence(tt.in)
			if err != nil {
				t.Fatalf("ParseRecurrence(%q): %v", tt.in, err)
			}
			if r.Strict != tt.strict || r.Amount != tt.amount || r.Unit != tt.unit {
				t.Errorf("got %+v", r)
			}
			if r.String() != tt.in {
				t.Errorf("String() = %q, want %q", r.String(), tt.in)
			}
		})
	}

	for _, s := range []string{"", "d", "1", "0d", "-1d", "1x", "+d", "1dd", "1.5d"} {
		if _, err := ParseRecurrence(s); err == nil {
			t.Errorf("ParseRecurrence(%q) succeeded, want error", s)
		}
	}
}

func TestRecurrenceApply(t *testing.T) {
	tests := []struct {
		rec  string
		base string
		want string
	}{
		{"1d", "2018-03-23", "2018-03-24"},
		{"1w", "2018-03-23", "2018-03-30"},
		{"+1m", "2018-04-01", "2018-05-01"},
		{"1m", "2010-01-30", "2010-02-28"},
		{"1m", "2010-02-28", "2010-03-31"},
		{"1y", "2003-02-28", "2004-02-29"},
		{"1y", "2004-02-29", "2005-02-28"},
		{"2m", "2010-12-31", "2011-02-28"},
	}
	for _, tt := range tests {
		r, err := ParseRecurrence(tt.rec)
		if err != nil {
			t.Fatalf("ParseRecurrence(%q): %v", tt.rec, err)
		}
		if got := r.Apply(MustDate(tt.base)); got.String() != tt.want {
			t.Errorf("%s from %s = %s, want %s", tt.rec, tt.base, got, tt.want)
		}
	}
}

func TestRecurrenceEqual(t *testing.T) {
	a, _ := ParseRecurrence("+1m")
	b, _ := ParseRecurrence("+1m")
	c, _ := ParseRecurrence("1m")
	if !(&a).Equal(&b) {
		t.Error("identical recurrences unequal")
	}
	if (&a).Equal(&c) {
		t.Error("strictness ignored")
	}
	var nilRec *Recurrence
	if !nilRec.Equal(nil) {
		t.Error("nil should equal nil")
	}
	if nilRec.Equal(&a) || (&a).Equal(nil) {
		t.Error("nil should not equal a value")
	}
}
