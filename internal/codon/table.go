// Package codon loads and validates codon-to-amino-acid tables.
package codon

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Bases is the RNA alphabet in standard genetic code table order.
const Bases = "UCAG"

// ErrInvalidTable is returned when a table resource fails validation.
var ErrInvalidTable = errors.New("invalid codon table")

//go:embed standard.json
var standardJSON []byte

// Table maps codons to one-letter amino acid codes and marks start/stop codons.
// A Table is immutable after construction.
type Table struct {
	codes    map[string]string
	codons   []string
	start    []string
	stop     []string
	startSet map[string]struct{}
	stopSet  map[string]struct{}
}

// resource is the on-disk shape shared by the JSON and TOML formats.
type resource struct {
	Codes map[string]string `json:"codes" toml:"codes"`
	Start []string          `json:"start" toml:"start"`
	Stop  []string          `json:"stop" toml:"stop"`
}

// Standard returns the embedded standard RNA genetic code.
func Standard() *Table {
	t, err := Parse(standardJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded codon table: %v", err))
	}
	return t
}

// Load reads a table from path. An empty path yields the standard table.
// Files ending in .toml are decoded as TOML, everything else as JSON.
func Load(path string) (*Table, error) {
	if path == "" {
		return Standard(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var res resource
		if _, err := toml.DecodeFile(path, &res); err != nil {
			return nil, fmt.Errorf("failed to decode codon table: %w", err)
		}
		return New(res.Codes, res.Start, res.Stop)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read codon table: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON table with codes, start and stop fields.
func Parse(data []byte) (*Table, error) {
	var res resource
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to decode codon table: %w", err)
	}
	return New(res.Codes, res.Start, res.Stop)
}

// New validates the inputs and builds a Table.
func New(codes map[string]string, start, stop []string) (*Table, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: codes is empty", ErrInvalidTable)
	}
	if len(start) == 0 {
		return nil, fmt.Errorf("%w: start is empty", ErrInvalidTable)
	}
	if len(stop) == 0 {
		return nil, fmt.Errorf("%w: stop is empty", ErrInvalidTable)
	}

	t := &Table{
		codes:    make(map[string]string, len(codes)),
		startSet: map[string]struct{}{},
		stopSet:  map[string]struct{}{},
	}
	for codon, aa := range codes {
		codon = strings.ToUpper(codon)
		if !isCodon(codon) {
			return nil, fmt.Errorf("%w: %q is not a codon", ErrInvalidTable, codon)
		}
		aa = strings.ToUpper(aa)
		if len(aa) != 1 {
			return nil, fmt.Errorf("%w: codon %s maps to %q, want a single letter", ErrInvalidTable, codon, aa)
		}
		t.codes[codon] = aa
	}
	t.codons = Universe()
	for _, codon := range t.codons {
		if _, ok := t.codes[codon]; !ok {
			return nil, fmt.Errorf("%w: missing codon %s", ErrInvalidTable, codon)
		}
	}

	for _, codon := range start {
		codon = strings.ToUpper(codon)
		if _, ok := t.codes[codon]; !ok {
			return nil, fmt.Errorf("%w: start codon %q not in codes", ErrInvalidTable, codon)
		}
		if _, dup := t.startSet[codon]; dup {
			continue
		}
		t.startSet[codon] = struct{}{}
		t.start = append(t.start, codon)
	}
	for _, codon := range stop {
		codon = strings.ToUpper(codon)
		if _, ok := t.codes[codon]; !ok {
			return nil, fmt.Errorf("%w: stop codon %q not in codes", ErrInvalidTable, codon)
		}
		if _, overlap := t.startSet[codon]; overlap {
			return nil, fmt.Errorf("%w: %s is both a start and a stop codon", ErrInvalidTable, codon)
		}
		if _, dup := t.stopSet[codon]; dup {
			continue
		}
		t.stopSet[codon] = struct{}{}
		t.stop = append(t.stop, codon)
	}
	return t, nil
}

// Universe lists all 64 codons in standard table order.
func Universe() []string {
	out := make([]string, 0, 64)
	for i := 0; i < len(Bases); i++ {
		for j := 0; j < len(Bases); j++ {
			for k := 0; k < len(Bases); k++ {
				out = append(out, string([]byte{Bases[i], Bases[j], Bases[k]}))
			}
		}
	}
	return out
}

// Codons returns the codon universe in standard table order.
func (t *Table) Codons() []string {
	return append([]string(nil), t.codons...)
}

// Start returns the start codons in declaration order.
func (t *Table) Start() []string {
	return append([]string(nil), t.start...)
}

// Stop returns the stop codons in declaration order.
func (t *Table) Stop() []string {
	return append([]string(nil), t.stop...)
}

// Translate returns the amino acid code for codon.
func (t *Table) Translate(codon string) (string, bool) {
	aa, ok := t.codes[codon]
	return aa, ok
}

// IsStart reports whether codon is a start codon.
func (t *Table) IsStart(codon string) bool {
	_, ok := t.startSet[codon]
	return ok
}

// IsStop reports whether codon is a stop codon.
func (t *Table) IsStop(codon string) bool {
	_, ok := t.stopSet[codon]
	return ok
}

// AminoAcids returns the distinct amino acid codes, sorted.
func (t *Table) AminoAcids() []string {
	seen := map[string]struct{}{}
	for _, aa := range t.codes {
		seen[aa] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for aa := range seen {
		out = append(out, aa)
	}
	sort.Strings(out)
	return out
}

// CodonsFor returns the codons that translate to aa, in table order.
func (t *Table) CodonsFor(aa string) []string {
	var out []string
	for _, codon := range t.codons {
		if t.codes[codon] == aa {
			out = append(out, codon)
		}
	}
	return out
}

func isCodon(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Bases, s[i]) < 0 {
			return false
		}
	}
	return true
}
