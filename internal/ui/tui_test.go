package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsTTY(t *testing.T) {
	t.Run("non-file writer", func(t *testing.T) {
		if IsTTY(&bytes.Buffer{}) {
			t.Error("IsTTY(bytes.Buffer) = true")
		}
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if IsTTY(f) {
			t.Error("IsTTY(regular file) = true")
		}
	})

	t.Run("closed file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		if err != nil {
			t.Fatal(err)
		}
		f.Close()
		if IsTTY(f) {
			t.Error("IsTTY(closed file) = true")
		}
	})
}
