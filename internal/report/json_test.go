package report

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	cs := diffLines(t,
		[]string{"(A) water the plants due:2018-04-01"},
		[]string{"x 2018-03-23 water the plants due:2018-04-01", "fresh task"},
	)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, Build(cs, true)); err != nil {
		t.Fatal(err)
	}

	if err := ValidateJSON(buf.Bytes()); err != nil {
		t.Fatalf("report does not match its own schema: %v", err)
	}

	var doc struct {
		Sections []struct {
			Title   string `json:"title"`
			Kind    string `json:"kind"`
			Entries []struct {
				Task    string `json:"task"`
				Changes [][]struct {
					Kind string `json:"kind"`
					Date string `json:"date"`
				} `json:"changes"`
			} `json:"entries"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections", len(doc.Sections))
	}
	if doc.Sections[0].Kind != "new" || doc.Sections[1].Kind != "completed" {
		t.Errorf("section kinds = %s, %s", doc.Sections[0].Kind, doc.Sections[1].Kind)
	}

	completed := doc.Sections[1].Entries[0]
	if len(completed.Changes) != 1 || completed.Changes[0][0].Kind != "completed" {
		t.Fatalf("completed entry changes = %+v", completed.Changes)
	}
	if completed.Changes[0][0].Date != "2018-03-23" {
		t.Errorf("date = %q", completed.Changes[0][0].Date)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if err := ValidateJSON(buf.Bytes()); err != nil {
		t.Fatalf("empty report does not validate: %v", err)
	}
	if got := buf.String(); !bytes.Contains(buf.Bytes(), []byte(`"sections": []`)) {
		t.Errorf("got %q", got)
	}
}

func TestValidateJSONRejectsGarbage(t *testing.T) {
	if err := ValidateJSON([]byte(`{"sections": [{"title": 5}]}`)); err == nil {
		t.Error("invalid document passed validation")
	}
	if err := ValidateJSON([]byte(`not json`)); err == nil {
		t.Error("non-JSON input passed validation")
	}
}
