package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "Score", "Accuracy"}
	rows := [][]string{
		{"alice", "1240", "92%"},
		{"bo", "80", "100%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Player Score Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "alice   1240      92%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "bo        80     100%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableHandlesMissingCells(t *testing.T) {
	headers := []string{"Player", "Score"}
	rows := [][]string{{"alice"}}

	lines := formatTable(headers, rows, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "alice       " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
