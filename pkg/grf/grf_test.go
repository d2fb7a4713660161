package grf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var testFiles = []struct {
	name    string
	content []byte
}{
	{"data/test.txt", []byte("Hello, GRF!")},
	{"data/prontera.gat", bytes.Repeat([]byte{0x47, 0x52, 0x41, 0x54}, 100)},
	{"data/subfolder/nested/file.txt", []byte("Nested file content")},
	{"data/한글/지도.gat", []byte("korean name")},
	{"data/empty.txt", nil},
}

// writeTestGRF builds an archive of testFiles in a temp dir.
func writeTestGRF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.grf")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	w, err := NewWriter(f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, tf := range testFiles {
		if err := w.Add(tf.name, tf.content); err != nil {
			t.Fatalf("Add(%s): %v", tf.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	archive, err := Open(writeTestGRF(t))
	if err != nil {
		t.Fatalf("failed to open GRF: %v", err)
	}
	defer archive.Close()

	if archive.header.Version != 0x200 {
		t.Errorf("version = 0x%x, want 0x200", archive.header.Version)
	}
	if len(archive.entries) != len(testFiles) {
		t.Errorf("entries = %d, want %d", len(archive.entries), len(testFiles))
	}
}

func TestList(t *testing.T) {
	archive, err := Open(writeTestGRF(t))
	if err != nil {
		t.Fatalf("failed to open GRF: %v", err)
	}
	defer archive.Close()

	want := []string{
		"data/empty.txt",
		"data/prontera.gat",
		"data/subfolder/nested/file.txt",
		"data/test.txt",
		"data/한글/지도.gat",
	}
	if got := archive.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %q, want %q", got, want)
	}
}

func TestContains(t *testing.T) {
	archive, err := Open(writeTestGRF(t))
	if err != nil {
		t.Fatalf("failed to open GRF: %v", err)
	}
	defer archive.Close()

	tests := []struct {
		path string
		want bool
	}{
		{"data/test.txt", true},
		{"DATA/TEST.TXT", true},
		{"data\\subfolder\\nested\\file.txt", true},
		{"data/한글/지도.gat", true},
		{"data/missing.txt", false},
	}
	for _, tt := range tests {
		if got := archive.Contains(tt.path); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRead(t *testing.T) {
	archive, err := Open(writeTestGRF(t))
	if err != nil {
		t.Fatalf("failed to open GRF: %v", err)
	}
	defer archive.Close()

	for _, tf := range testFiles {
		data, err := archive.Read(tf.name)
		if err != nil {
			t.Errorf("Read(%s): %v", tf.name, err)
			continue
		}
		if !bytes.Equal(data, tf.content) {
			t.Errorf("Read(%s) = %q, want %q", tf.name, data, tf.content)
		}
	}

	if _, err := archive.Read("data/missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewReaderErrors(t *testing.T) {
	valid, err := os.ReadFile(writeTestGRF(t))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "Master of Tragic")

	badVersion := append([]byte(nil), valid...)
	badVersion[42] = 0x03

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"bad magic", badMagic, ErrInvalidMagic},
		{"bad version", badVersion, ErrUnsupportedVersion},
		{"truncated table", valid[:len(valid)-4], ErrCorruptTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := NewReader(bytes.NewReader([]byte("short"))); err == nil {
		t.Error("expected error for short input")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.grf")); err == nil {
		t.Error("expected error for missing file")
	}
}
