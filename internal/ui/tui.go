// Package ui provides an optional terminal interface for browsing a
// diff report.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tododiff/internal/report"
)

// RunViewer starts a scrollable full-screen viewer over the report
// sections. It refuses to start when stdout is not a terminal.
func RunViewer(ctx context.Context, sections []report.Section) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newViewerModel(sections)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type viewerModel struct {
	sections []report.Section
	filter   report.Tone
	filtered bool
	lines    []string
	offset   int
	width    int
	height   int
	showHelp bool
}

func newViewerModel(sections []report.Section) *viewerModel {
	m := &viewerModel{sections: sections}
	m.rebuild()
	return m
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h", "?":
			m.showHelp = !m.showHelp
		case "j", "down":
			m.offset++
			m.clampOffset()
		case "k", "up":
			m.offset--
			m.clampOffset()
		case "pgdown", " ":
			m.offset += m.pageSize()
			m.clampOffset()
		case "pgup":
			m.offset -= m.pageSize()
			m.clampOffset()
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = len(m.lines)
			m.clampOffset()
		case "1":
			m.setFilter(report.ToneNew)
		case "2":
			m.setFilter(report.ToneRemoved)
		case "3":
			m.setFilter(report.ToneCompleted)
		case "4":
			m.setFilter(report.ToneChanged)
		case "0":
			m.filtered = false
			m.rebuild()
		}
	}
	return m, nil
}

func (m *viewerModel) View() string {
	var b strings.Builder
	b.WriteString("tododiff\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	if m.filtered {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", toneName(m.filter))
	}

	end := m.offset + m.pageSize()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n[j/k scroll  1-4 filter  0 all  h help  q quit]")
	return b.String()
}

func (m *viewerModel) setFilter(t report.Tone) {
	m.filter = t
	m.filtered = true
	m.rebuild()
}

// rebuild re-renders the visible sections into scrollable lines.
func (m *viewerModel) rebuild() {
	visible := m.sections
	if m.filtered {
		visible = nil
		for _, s := range m.sections {
			if s.Tone == m.filter {
				visible = append(visible, s)
			}
		}
	}

	var buf bytes.Buffer
	_ = report.WriteText(&buf, visible, report.TextOptions{Color: true})
	m.lines = strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	m.offset = 0
}

func (m *viewerModel) pageSize() int {
	// Title, optional filter line and footer take a few rows.
	reserved := 5
	if m.filtered {
		reserved += 2
	}
	if m.height > reserved {
		return m.height - reserved
	}
	return 10
}

func (m *viewerModel) clampOffset() {
	max := len(m.lines) - m.pageSize()
	if max < 0 {
		max = 0
	}
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keys:\n")
	b.WriteString("  j / k, arrows    scroll\n")
	b.WriteString("  pgup / pgdn      page\n")
	b.WriteString("  g / G            top / bottom\n")
	b.WriteString("  1 2 3 4          show only new / removed / completed / changed\n")
	b.WriteString("  0                show everything\n")
	b.WriteString("  h or ?           toggle this help\n")
	b.WriteString("  q                quit\n")
}

func toneName(t report.Tone) string {
	switch t {
	case report.ToneNew:
		return "new"
	case report.ToneRemoved:
		return "removed"
	case report.ToneCompleted:
		return "completed"
	default:
		return "changed"
	}
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
