package server

import (
	"reflect"
	"testing"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []Action
	}{
		{"arrows", []byte("\x1b[A\x1b[B\x1b[C\x1b[D"), []Action{ActionUp, ActionDown, ActionRight, ActionLeft}},
		{"wasd", []byte("wasd"), []Action{ActionUp, ActionLeft, ActionDown, ActionRight}},
		{"upper case", []byte("WASD"), []Action{ActionUp, ActionLeft, ActionDown, ActionRight}},
		{"spin and reset", []byte(" r"), []Action{ActionToggleSpin, ActionReset}},
		{"quit", []byte("q"), []Action{ActionQuit}},
		{"ctrl-c", []byte{3}, []Action{ActionQuit}},
		{"unknown ignored", []byte("xyz\x1b[Z"), nil},
		{"lone escape", []byte{0x1b}, nil},
		{"mixed", []byte("a\x1b[Cq"), []Action{ActionLeft, ActionRight, ActionQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInput(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseInput(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
