package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yoonthegoon/gejang/internal/board"
)

func TestReadRecords(t *testing.T) {
	input := "# start\n" + board.StartFEN + "\n\n   \n  8/8/8/8/8/8/8/8 w - - 0 1  \n"
	got, err := readRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readRecords: %v", err)
	}
	want := []string{board.StartFEN, "8/8/8/8/8/8/8/8 w - - 0 1"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProcessNormalizes(t *testing.T) {
	var out bytes.Buffer
	pos, err := process(&out, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR   w KQkq - 0 01")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if pos.FullMoveNumber != 1 {
		t.Errorf("full move = %d", pos.FullMoveNumber)
	}
	if got := strings.TrimSpace(out.String()); got != board.StartFEN {
		t.Errorf("output = %q, want %q", got, board.StartFEN)
	}
}

func TestProcessRejects(t *testing.T) {
	var out bytes.Buffer
	_, err := process(&out, "8/8/8/8/8/8/8/8 w")
	if !errors.Is(err, board.ErrMissingField) {
		t.Errorf("error = %v, want ErrMissingField", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRenderNeedsFirstRecord(t *testing.T) {
	if err := render(nil); err != nil {
		t.Errorf("render without diagram flags: %v", err)
	}

	path := filepath.Join(t.TempDir(), "board.svg")
	*svgPath = path
	defer func() { *svgPath = "" }()

	if err := render(nil); err == nil {
		t.Error("expected an error when the first record did not parse")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("diagram written for a failed record: %v", err)
	}

	if err := render(board.NewPosition()); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), board.StartFEN) {
		t.Error("diagram does not show the first record")
	}
}
