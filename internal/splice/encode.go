package splice

import "github.com/inodb/vibe-splice/internal/genome"

// MaxUnsplicedLen bounds the encodings Encode will allocate. Annotated
// transcripts stay orders of magnitude below it; longer ones are corrupt rows.
const MaxUnsplicedLen int64 = 1 << 30

// Encoding marks every position of an unspliced transcript with 1 (exon) or
// 0 (intron). It is never mutated after Encode returns it.
type Encoding []uint8

// Encode builds the encoding of length unsplicedLen with every position
// covered by an exon interval set to 1. Marking is idempotent, so overlapping
// intervals produce their union. Intervals are clamped to the sequence; the
// inputs are not modified. Lengths outside (0, MaxUnsplicedLen] yield an
// empty encoding.
func Encode(exons []genome.Interval, unsplicedLen int64) Encoding {
	if unsplicedLen <= 0 || unsplicedLen > MaxUnsplicedLen {
		return Encoding{}
	}

	enc := make(Encoding, unsplicedLen)
	for _, iv := range exons {
		c, ok := Clamp(iv, unsplicedLen)
		if !ok {
			continue
		}
		for i := c.Start; i <= c.End; i++ {
			enc[i] = 1
		}
	}
	return enc
}

// Len returns the number of positions in the encoding.
func (e Encoding) Len() int {
	return len(e)
}

// Ones returns the number of exon positions.
func (e Encoding) Ones() int64 {
	var n int64
	for _, v := range e {
		n += int64(v)
	}
	return n
}

// String renders the encoding as a string of '0' and '1' characters.
func (e Encoding) String() string {
	b := make([]byte, len(e))
	for i, v := range e {
		b[i] = '0' + v
	}
	return string(b)
}

// ParseEncoding parses the String form. Any byte other than '1' is read as 0.
func ParseEncoding(s string) Encoding {
	enc := make(Encoding, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '1' {
			enc[i] = 1
		}
	}
	return enc
}
