package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTempHistory(t *testing.T, maxSize int) *History {
	t.Helper()
	return &History{
		entries: make([]string, 0),
		maxSize: maxSize,
		file:    filepath.Join(t.TempDir(), "history"),
	}
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h == nil {
		t.Fatal("NewHistory returned nil")
	}
	if h.maxSize != 1000 {
		t.Errorf("maxSize = %d, want %d", h.maxSize, 1000)
	}
	if filepath.Base(h.file) != "history" {
		t.Errorf("history file should be named 'history', got %q", filepath.Base(h.file))
	}
	if !strings.Contains(h.file, ".keywire") {
		t.Errorf("history file should live under .keywire, got %q", h.file)
	}
}

func TestHistory_Add(t *testing.T) {
	h := newTempHistory(t, 1000)

	h.Add("GET a")
	h.Add("GET b")
	h.Add("GET c")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want %d", h.Len(), 3)
	}
}

func TestHistory_Add_CollapsesDuplicates(t *testing.T) {
	h := newTempHistory(t, 1000)

	h.Add("GET a")
	h.Add("GET a")
	h.Add("GET a")
	h.Add("GET b")
	h.Add("GET a")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (consecutive duplicates collapse)", h.Len())
	}
	if h.Get(0) != "GET a" || h.Get(1) != "GET b" || h.Get(2) != "GET a" {
		t.Errorf("unexpected order: %q %q %q", h.Get(0), h.Get(1), h.Get(2))
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := newTempHistory(t, 3)

	h.Add("cmd1")
	h.Add("cmd2")
	h.Add("cmd3")
	h.Add("cmd4") // Should evict cmd1

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want %d", h.Len(), 3)
	}
	if h.entries[0] != "cmd2" {
		t.Errorf("entries[0] = %q, want %q", h.entries[0], "cmd2")
	}
}

func TestHistory_Get(t *testing.T) {
	h := newTempHistory(t, 1000)
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"}, // Most recent
		{1, "second"},
		{2, "first"},
		{3, ""},   // Out of range
		{-1, ""},  // Negative index
		{100, ""}, // Way out of range
	}

	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	h := newTempHistory(t, 1000)
	h.Add("SET name Gemini")
	h.Add("GET name")
	h.Add("DELETE name")

	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	h2 := &History{entries: make([]string, 0), maxSize: 1000, file: h.file}
	if err := h2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if h2.Len() != 3 {
		t.Errorf("loaded %d entries, want %d", h2.Len(), 3)
	}
	if h2.entries[0] != "SET name Gemini" {
		t.Errorf("entries[0] = %q, want %q", h2.entries[0], "SET name Gemini")
	}
}

func TestHistory_Load_NonexistentFile(t *testing.T) {
	h := &History{
		entries: make([]string, 0),
		maxSize: 1000,
		file:    filepath.Join(t.TempDir(), "never-written"),
	}

	if err := h.Load(); err != nil {
		t.Errorf("Load of nonexistent file should not error: %v", err)
	}
	if h.Len() != 0 {
		t.Error("entries should be empty after loading nonexistent file")
	}
}

func TestHistory_Load_TrimsToMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	lines := "cmd1\ncmd2\ncmd3\ncmd4\ncmd5\n"
	if err := os.WriteFile(path, []byte(lines), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	h := &History{entries: make([]string, 0), maxSize: 3, file: path}
	if err := h.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.entries[0] != "cmd3" {
		t.Errorf("entries[0] = %q, want the oldest kept entry cmd3", h.entries[0])
	}
}

func TestHistory_Save_CreateDir(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), "nested", "dir", "history")

	h := &History{entries: []string{"GET a"}, maxSize: 1000, file: historyFile}
	if err := h.Save(); err != nil {
		t.Fatalf("Save failed to create directory: %v", err)
	}

	if _, err := os.Stat(historyFile); os.IsNotExist(err) {
		t.Error("history file was not created")
	}
}
