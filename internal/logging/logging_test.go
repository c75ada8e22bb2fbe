package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	t.Run("default level hides debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, DefaultOptions())

		logger.Debug("hidden")
		logger.Info("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("debug message leaked at info level: %q", out)
		}
		if !strings.Contains(out, "shown") {
			t.Errorf("info message missing: %q", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		opts := DefaultOptions()
		opts.Verbose = true
		logger := New(&buf, opts)

		logger.Debug("details")
		if !strings.Contains(buf.String(), "details") {
			t.Errorf("debug message missing in verbose mode: %q", buf.String())
		}
	})

	t.Run("prefix is applied", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, Options{Prefix: "tododiff"})

		logger.Info("hello")
		if !strings.Contains(buf.String(), "tododiff") {
			t.Errorf("prefix missing: %q", buf.String())
		}
	})

	t.Run("structured fields render", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, DefaultOptions())
		logger.SetLevel(log.InfoLevel)

		logger.Info("parsed", "tasks", 3)
		out := buf.String()
		if !strings.Contains(out, "tasks") || !strings.Contains(out, "3") {
			t.Errorf("expected structured field in output, got %q", out)
		}
	})
}
