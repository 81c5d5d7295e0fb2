package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTailBufferUnderLimit(t *testing.T) {
	b := &TailBuffer{Max: 10}
	b.Write([]byte("hello"))

	if got := b.String(); got != "hello" {
		t.Errorf("Expected 'hello', but got '%s'", got)
	}
}

func TestTailBufferKeepsTail(t *testing.T) {
	b := &TailBuffer{Max: 5}
	b.Write([]byte("0123456789"))

	if got := b.String(); got != "...56789" {
		t.Errorf("Expected '...56789', but got '%s'", got)
	}
}

func TestTailBufferAcrossWrites(t *testing.T) {
	b := &TailBuffer{Max: 4}
	for _, chunk := range []string{"ab", "cd", "ef"} {
		b.Write([]byte(chunk))
	}

	if got := b.String(); got != "...cdef" {
		t.Errorf("Expected '...cdef', but got '%s'", got)
	}
}

func TestTailBufferNoLimit(t *testing.T) {
	b := &TailBuffer{}
	b.Write([]byte(strings.Repeat("x", 1000)))

	if len(b.String()) != 1000 {
		t.Errorf("Expected all output kept when Max is zero, got %d bytes", len(b.String()))
	}
}

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := SafeWriteFile(path, "{}"); err != nil {
		t.Fatalf("SafeWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected '{}', but got '%s'", data)
	}
}

func TestShortPath(t *testing.T) {
	short := "internal/mods/registry.go"
	if got := ShortPath(short); got != short {
		t.Errorf("Expected '%s', but got '%s'", short, got)
	}

	long := strings.Repeat("a/", 40) + "mod.ini"
	got := ShortPath(long)
	if len(got) != 50 {
		t.Errorf("Expected 50 chars, got %d", len(got))
	}
	if !strings.HasPrefix(got, "...") {
		t.Errorf("Expected '...' prefix, got '%s'", got)
	}
}
