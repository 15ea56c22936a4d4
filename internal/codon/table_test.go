package codon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStandardTable(t *testing.T) {
	table := Standard()
	if got := len(table.Codons()); got != 64 {
		t.Fatalf("expected 64 codons, got %d", got)
	}
	if aa, ok := table.Translate("AUG"); !ok || aa != "M" {
		t.Fatalf("expected AUG -> M, got %q (ok=%v)", aa, ok)
	}
	if !table.IsStart("AUG") {
		t.Fatalf("expected AUG to be a start codon")
	}
	for _, codon := range []string{"UAA", "UAG", "UGA"} {
		if !table.IsStop(codon) {
			t.Fatalf("expected %s to be a stop codon", codon)
		}
	}
	if got := table.CodonsFor("W"); len(got) != 1 || got[0] != "UGG" {
		t.Fatalf("unexpected codons for W: %v", got)
	}
}

func TestNewRejectsOverlappingStartStop(t *testing.T) {
	codes := standardCodes(t)
	_, err := New(codes, []string{"AUG"}, []string{"UAA", "AUG"})
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}

func TestNewRejectsMissingCodon(t *testing.T) {
	codes := standardCodes(t)
	delete(codes, "GGG")
	_, err := New(codes, []string{"AUG"}, []string{"UAA"})
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}

func TestNewUppercasesResidues(t *testing.T) {
	codes := standardCodes(t)
	codes["AAA"] = "k"
	table, err := New(codes, []string{"AUG"}, []string{"UAA"})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	if aa, _ := table.Translate("AAA"); aa != "K" {
		t.Fatalf("expected AAA -> K, got %q", aa)
	}
	if got := table.CodonsFor("k"); len(got) != 0 {
		t.Fatalf("expected no lowercase residue, got %v", got)
	}
}

func TestNewRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(map[string]string)
		start []string
		stop  []string
	}{
		{name: "dna base", edit: func(c map[string]string) { c["ATG"] = "M" }, start: []string{"AUG"}, stop: []string{"UAA"}},
		{name: "long code", edit: func(c map[string]string) { c["AUG"] = "Met" }, start: []string{"AUG"}, stop: []string{"UAA"}},
		{name: "unknown start", edit: func(map[string]string) {}, start: []string{"XYZ"}, stop: []string{"UAA"}},
		{name: "empty stop", edit: func(map[string]string) {}, start: []string{"AUG"}, stop: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codes := standardCodes(t)
			tc.edit(codes)
			if _, err := New(codes, tc.start, tc.stop); !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("expected ErrInvalidTable, got %v", err)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.toml")
	content := "start = [\"AUG\"]\nstop = [\"UAA\"]\n\n[codes]\n"
	for codon, aa := range standardCodes(t) {
		content += codon + " = \"" + aa + "\"\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if got := table.Stop(); len(got) != 1 || got[0] != "UAA" {
		t.Fatalf("unexpected stop codons: %v", got)
	}
}

func TestLoadEmptyPathIsStandard(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if len(table.Start()) != 1 || len(table.Stop()) != 3 {
		t.Fatalf("expected standard start/stop sets, got %v %v", table.Start(), table.Stop())
	}
}

func standardCodes(t *testing.T) map[string]string {
	t.Helper()
	table := Standard()
	codes := map[string]string{}
	for _, codon := range table.Codons() {
		aa, _ := table.Translate(codon)
		codes[codon] = aa
	}
	return codes
}
