package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/tuicodon/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Residue", "Missed", "Share"}
	rows := [][]string{
		{"K", "12", "75.0%"},
		{"*", "4", "25.0%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Residue Missed Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "K           12 75.0%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "*            4 25.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderSymbolTableSortsByCount(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.SymbolCount{{Symbol: "A", Count: 1}, {Symbol: "K", Count: 3}}
	if err := RenderSymbolTable(&buf, entries); err != nil {
		t.Fatalf("render table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "K") {
		t.Fatalf("expected K first, got %q", buf.String())
	}
}
