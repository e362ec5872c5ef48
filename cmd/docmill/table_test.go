package main

import (
	"strings"
	"testing"
)

func TestRenderTableFillsAbsentCells(t *testing.T) {
	out := renderTable(
		[]string{"Failed file", "Attempts", "Last error"},
		[][]string{
			{"a.fodt", "2", ""},
			{"b.fodt"},
		},
		[]columnAlignment{alignLeft, alignRight},
	)

	for _, want := range []string{"Failed file", "a.fodt", "b.fodt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if !strings.Contains(out, absentCell) {
		t.Fatalf("empty cells should carry the absent marker:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"x"}}, nil); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
