package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tododiff/internal/engine"
)

//go:embed schema/report.schema.json
var reportSchema string

// jsonReport is the machine readable report shape. The structure is
// pinned by the embedded JSON schema.
type jsonReport struct {
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	Title   string      `json:"title"`
	Kind    string      `json:"kind"`
	Entries []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Task    string         `json:"task"`
	Changes [][]jsonChange `json:"changes,omitempty"`
}

type jsonChange struct {
	Kind      string   `json:"kind"`
	Strict    bool     `json:"strict,omitempty"`
	Date      string   `json:"date,omitempty"`
	DeltaDays int      `json:"deltaDays,omitempty"`
	FromDate  string   `json:"fromDate,omitempty"`
	ToDate    string   `json:"toDate,omitempty"`
	From      string   `json:"from,omitempty"`
	To        string   `json:"to,omitempty"`
	Key       string   `json:"key,omitempty"`
	Added     []string `json:"added,omitempty"`
	Removed   []string `json:"removed,omitempty"`
}

func toneKind(t Tone) string {
	switch t {
	case ToneNew:
		return "new"
	case ToneRemoved:
		return "removed"
	case ToneCompleted:
		return "completed"
	default:
		return "changed"
	}
}

// WriteJSON renders sections as an indented JSON document matching the
// embedded schema.
func WriteJSON(w io.Writer, sections []Section) error {
	doc := jsonReport{Sections: []jsonSection{}}
	for _, sec := range sections {
		js := jsonSection{Title: sec.Title, Kind: toneKind(sec.Tone), Entries: []jsonEntry{}}
		for _, e := range sec.Entries {
			je := jsonEntry{Task: e.Task.Render()}
			for _, line := range e.Changes {
				jl := make([]jsonChange, 0, len(line))
				for _, c := range line {
					jl = append(jl, toJSONChange(c))
				}
				je.Changes = append(je.Changes, jl)
			}
			js.Entries = append(js.Entries, je)
		}
		doc.Sections = append(doc.Sections, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func toJSONChange(c engine.Change) jsonChange {
	jc := jsonChange{
		Kind:      c.Kind.String(),
		Strict:    c.Strict,
		DeltaDays: c.DeltaDays,
		From:      c.From,
		To:        c.To,
		Key:       c.Key,
		Added:     c.Added,
		Removed:   c.Removed,
	}
	if !c.Date.IsZero() {
		jc.Date = c.Date.String()
	}
	if !c.FromDate.IsZero() {
		jc.FromDate = c.FromDate.String()
	}
	if !c.ToDate.IsZero() {
		jc.ToDate = c.ToDate.String()
	}
	return jc
}

// ValidateJSON checks a serialized report against the embedded schema.
func ValidateJSON(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.schema.json", strings.NewReader(reportSchema)); err != nil {
		return fmt.Errorf("loading report schema: %w", err)
	}
	schema, err := compiler.Compile("report.schema.json")
	if err != nil {
		return fmt.Errorf("compiling report schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("validating report: %w", err)
	}
	return nil
}
