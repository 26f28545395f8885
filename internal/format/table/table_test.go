package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Downloader", "on"},
		{"Cores", "off"},
	}
	got := Format(rows, Options{})
	want := []string{
		"Downloader  on",
		"Cores       off",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatMinWidthsAndRightAlign(t *testing.T) {
	rows := [][]string{{"a", "1"}, {"b", "22"}}
	got := Format(rows, Options{
		Alignments: []Alignment{AlignLeft, AlignRight},
		MinWidths:  []int{4},
		Gap:        1,
	})
	if got[0] != "a     1" {
		t.Fatalf("expected %q, got %q", "a     1", got[0])
	}
	if got[1] != "b    22" {
		t.Fatalf("expected %q, got %q", "b    22", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, Options{}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
