package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Difficulty", "Solved", "Rate"}
	rows := [][]string{
		{"easy", "12", "80.0%"},
		{"hard", "3", "7.5%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "Difficulty  Solved   Rate" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "----------  ------  -----" {
		t.Fatalf("unexpected rule line: %q", lines[1])
	}
	if lines[2] != "easy            12  80.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "hard             3   7.5%" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Plant", "N"}, [][]string{{"花", "1"}}, nil)
	if lines[2] != "花     1" {
		t.Fatalf("wide rune not padded by cell width: %q", lines[2])
	}
}
