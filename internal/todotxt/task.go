// Package todotxt parses todo.txt task lines into structured, immutable
// task records and renders them back out.
package todotxt

import (
	"strings"
	"unicode/utf8"
)

// Tag is one key:value pair the parser did not recognize. Tags keep the
// order they appear in on the line.
type Tag struct {
	Key   string
	Value string
}

// Task is one parsed todo.txt line. Tasks are never mutated after
// parsing; the diff engine builds new values instead.
//
// Description holds the free text with +project, @context and key:value
// tokens stripped and whitespace collapsed. Raw always holds the original
// line and is what reports display. A zero Priority means "no priority";
// zero Dates mean "no date".
type Task struct {
	Completed      bool
	CompletionDate Date
	CreationDate   Date
	Priority       byte // 'A'..'Z', 0 = none
	Description    string
	Projects       []string
	Contexts       []string
	Due            Date
	Threshold      Date
	Rec            *Recurrence
	Tags           []Tag
	Raw            string

	// Opaque marks a line that could not be parsed at all. Opaque tasks
	// carry only Raw and compare by raw text equality.
	Opaque bool
}

// Parse turns one line into a Task. It never fails: malformed dates and
// recurrence values stay in the description as literal text, and a line
// that is not valid text at all comes back as an Opaque task.
func Parse(line string) Task {
	t := Task{Raw: line}
	if !isParseableText(line) {
		t.Opaque = true
		return t
	}

	rest := line
	if strings.HasPrefix(rest, "x ") {
		t.Completed = true
		rest = rest[2:]
		if d, r, ok := takeDate(rest); ok {
			t.CompletionDate = d
			rest = r
			if d2, r2, ok := takeDate(rest); ok {
				t.CreationDate = d2
				rest = r2
			}
		}
	} else {
		if len(rest) >= 4 && rest[0] == '(' && rest[1] >= 'A' && rest[1] <= 'Z' && rest[2] == ')' && rest[3] == ' ' {
			t.Priority = rest[1]
			rest = rest[4:]
		}
		if d, r, ok := takeDate(rest); ok {
			t.CreationDate = d
			rest = r
		}
	}

	var desc []string
	for _, tok := range strings.Fields(rest) {
		switch {
		case len(tok) > 1 && tok[0] == '+':
			t.Projects = appendUnique(t.Projects, tok[1:])
		case len(tok) > 1 && tok[0] == '@':
			t.Contexts = appendUnique(t.Contexts, tok[1:])
		default:
			key, value, ok := splitTag(tok)
			if !ok {
				desc = append(desc, tok)
				continue
			}
			switch key {
			case "due":
				if d, err := ParseDate(value); err == nil {
					t.Due = d
					continue
				}
			case "t":
				if d, err := ParseDate(value); err == nil {
					t.Threshold = d
					continue
				}
			case "rec":
				if r, err := ParseRecurrence(value); err == nil {
					t.Rec = &r
					continue
				}
			default:
				t.Tags = setTag(t.Tags, key, value)
				continue
			}
			// A recognized key with a malformed value stays literal text.
			desc = append(desc, tok)
		}
	}
	t.Description = strings.Join(desc, " ")
	return t
}

// Render produces a canonical line for the task. Field values round-trip
// through Parse; tag order normalizes to projects, contexts, due, t, rec,
// then remaining tags. Opaque tasks render as their raw line.
func (t Task) Render() string {
	if t.Opaque {
		return t.Raw
	}
	var parts []string
	if t.Completed {
		parts = append(parts, "x")
		if !t.CompletionDate.IsZero() {
			parts = append(parts, t.CompletionDate.String())
		}
		if !t.CreationDate.IsZero() {
			parts = append(parts, t.CreationDate.String())
		}
	} else {
		if t.Priority != 0 {
			parts = append(parts, "("+string(t.Priority)+")")
		}
		if !t.CreationDate.IsZero() {
			parts = append(parts, t.CreationDate.String())
		}
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	for _, p := range t.Projects {
		parts = append(parts, "+"+p)
	}
	for _, c := range t.Contexts {
		parts = append(parts, "@"+c)
	}
	if !t.Due.IsZero() {
		parts = append(parts, "due:"+t.Due.String())
	}
	if !t.Threshold.IsZero() {
		parts = append(parts, "t:"+t.Threshold.String())
	}
	if t.Rec != nil {
		parts = append(parts, "rec:"+t.Rec.String())
	}
	for _, tag := range t.Tags {
		parts = append(parts, tag.Key+":"+tag.Value)
	}
	return strings.Join(parts, " ")
}

// MatchKey is the normalized identity the matcher groups tasks by:
// the description lowered and whitespace-collapsed, so matching tolerates
// case edits but stays exact on tags. Opaque tasks key on their raw line.
func (t Task) MatchKey() string {
	if t.Opaque {
		return t.Raw
	}
	return strings.ToLower(t.Description)
}

// Equal reports whether two tasks carry the same semantic content. Raw
// text is ignored except for Opaque tasks, which only have raw text.
func (t Task) Equal(o Task) bool {
	if t.Opaque || o.Opaque {
		return t.Opaque == o.Opaque && t.Raw == o.Raw
	}
	return t.Completed == o.Completed &&
		t.CompletionDate.Equal(o.CompletionDate) &&
		t.CreationDate.Equal(o.CreationDate) &&
		t.Priority == o.Priority &&
		t.Description == o.Description &&
		equalStrings(t.Projects, o.Projects) &&
		equalStrings(t.Contexts, o.Contexts) &&
		t.Due.Equal(o.Due) &&
		t.Threshold.Equal(o.Threshold) &&
		t.Rec.Equal(o.Rec) &&
		equalTags(t.Tags, o.Tags)
}

// Tag returns the value for an unrecognized tag key.
func (t Task) Tag(key string) (string, bool) {
	for _, tag := range t.Tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// takeDate consumes a leading YYYY-MM-DD token.
func takeDate(s string) (Date, string, bool) {
	tok := s
	rest := ""
	if i := strings.IndexByte(s, ' '); i >= 0 {
		tok, rest = s[:i], s[i+1:]
	}
	if len(tok) != 10 {
		return Date{}, s, false
	}
	d, err := ParseDate(tok)
	if err != nil {
		return Date{}, s, false
	}
	return d, rest, true
}

// splitTag splits key:value tokens. The key must be non-empty and made of
// word characters; the value must be non-empty.
func splitTag(tok string) (string, string, bool) {
	i := strings.IndexByte(tok, ':')
	if i <= 0 || i == len(tok)-1 {
		return "", "", false
	}
	key := tok[:i]
	for j := 0; j < len(key); j++ {
		c := key[j]
		ok := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
		if !ok {
			return "", "", false
		}
	}
	return key, tok[i+1:], true
}

// isParseableText rejects lines with invalid UTF-8 or control bytes;
// anything else parses to some Task.
func isParseableText(line string) bool {
	if !utf8.ValidString(line) {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] < 0x20 && line[i] != '\t' {
			return false
		}
	}
	return true
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// setTag overwrites an existing key in place or appends a new one,
// preserving first-seen order.
func setTag(tags []Tag, key, value string) []Tag {
	for i := range tags {
		if tags[i].Key == key {
			tags[i].Value = value
			return tags
		}
	}
	return append(tags, Tag{Key: key, Value: value})
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalTags(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
