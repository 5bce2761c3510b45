package nuc

import "fmt"

// Base is one of the four nucleotides, encoded as an index in [0, AlphabetSize).
type Base uint8

const (
	A Base = iota
	C
	G
	T
)

const AlphabetSize = 4

var baseLetters = [AlphabetSize]byte{'A', 'C', 'G', 'T'}

func (b Base) Byte() byte {
	if int(b) >= AlphabetSize {
		return 'N'
	}
	return baseLetters[b]
}

func (b Base) String() string {
	return string(b.Byte())
}

// Sequence is an ordered run of bases. Sequences are treated as immutable
// once observed.
type Sequence []Base

func (s Sequence) String() string {
	out := make([]byte, len(s))
	for i, b := range s {
		out[i] = b.Byte()
	}
	return string(out)
}

// Parse decodes an A/C/G/T string (case-insensitive) into a Sequence.
func Parse(raw string) (Sequence, error) {
	seq := make(Sequence, len(raw))
	for i := 0; i < len(raw); i++ {
		b, err := ParseBase(raw[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		seq[i] = b
	}
	return seq, nil
}

func ParseBase(ch byte) (Base, error) {
	switch ch {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	default:
		return 0, fmt.Errorf("invalid nucleotide %q", ch)
	}
}
