// Package strand renders a coding sequence as one of eight strand/direction views.
package strand

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects alphabet, strand and display direction.
type Variant int

const (
	RNATemplate Variant = iota
	RNATemplateReverse
	RNANonTemplate
	RNANonTemplateReverse
	DNATemplate
	DNATemplateReverse
	DNANonTemplate
	DNANonTemplateReverse
)

var variantNames = []string{
	"rna-template",
	"rna-template-reverse",
	"rna-nontemplate",
	"rna-nontemplate-reverse",
	"dna-template",
	"dna-template-reverse",
	"dna-nontemplate",
	"dna-nontemplate-reverse",
}

var (
	// ErrInvalidNucleotide matches any *InvalidNucleotideError.
	ErrInvalidNucleotide = errors.New("invalid nucleotide")
	// ErrUnknownVariant is returned for names or values outside the eight variants.
	ErrUnknownVariant = errors.New("unknown strand variant")
)

// InvalidNucleotideError reports a base outside {A, U, C, G}.
type InvalidNucleotideError struct {
	Pos  int
	Base byte
}

func (e *InvalidNucleotideError) Error() string {
	return fmt.Sprintf("invalid nucleotide %q at position %d", e.Base, e.Pos)
}

// Is makes errors.Is(err, ErrInvalidNucleotide) succeed.
func (e *InvalidNucleotideError) Is(target error) bool {
	return target == ErrInvalidNucleotide
}

// Variants lists every variant in enum order.
func Variants() []Variant {
	out := make([]Variant, len(variantNames))
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// String returns the kebab-case name used by flags and config.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant resolves a kebab-case name, ignoring case and surrounding space.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (available: %s)", ErrUnknownVariant, name, strings.Join(variantNames, ", "))
}

// IsDNA reports whether the variant displays T instead of U.
func (v Variant) IsDNA() bool { return v >= DNATemplate }

// IsReverse reports whether the variant is labelled 3' to 5'.
func (v Variant) IsReverse() bool { return v%2 == 1 }

// Present renders the RNA coding strand seq as variant v with end markers.
func Present(seq string, v Variant) (string, error) {
	var (
		body string
		err  error
	)
	switch v {
	case RNATemplate:
		body = seq
	case RNATemplateReverse:
		body = Reverse(seq)
	case RNANonTemplate:
		body, err = Complement(Reverse(seq))
	case RNANonTemplateReverse:
		body, err = Complement(seq)
	case DNATemplate:
		body = ToDNA(Reverse(seq))
	case DNATemplateReverse:
		body = ToDNA(seq)
	case DNANonTemplate:
		body, err = Complement(Reverse(seq))
		body = ToDNA(body)
	case DNANonTemplateReverse:
		body, err = Complement(seq)
		body = ToDNA(body)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	if err != nil {
		return "", err
	}
	if v.IsReverse() {
		return "3'-" + body + "-5'", nil
	}
	return "5'-" + body + "-3'", nil
}

// Complement pairs A with U and C with G.
func Complement(seq string) (string, error) {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A':
			out[i] = 'U'
		case 'U':
			out[i] = 'A'
		case 'C':
			out[i] = 'G'
		case 'G':
			out[i] = 'C'
		default:
			return "", &InvalidNucleotideError{Pos: i, Base: seq[i]}
		}
	}
	return string(out), nil
}

// Reverse reverses byte order.
func Reverse(seq string) string {
	b := []byte(seq)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ToDNA substitutes T for every U.
func ToDNA(seq string) string {
	return strings.ReplaceAll(seq, "U", "T")
}

// Strip removes the 5'/3' end markers added by Present.
func Strip(display string) string {
	for _, p := range []string{"5'-", "3'-"} {
		display = strings.TrimPrefix(display, p)
	}
	for _, s := range []string{"-3'", "-5'"} {
		display = strings.TrimSuffix(display, s)
	}
	return display
}
