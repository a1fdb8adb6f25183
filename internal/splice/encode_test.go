package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-splice/internal/genome"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, genome.Interval{Start: 0, End: 50}, Normalize(100, 150, 100))
	assert.Equal(t, genome.Interval{Start: 100, End: 130}, Normalize(200, 230, 100))
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name string
		iv   genome.Interval
		want bool
	}{
		{"whole sequence", genome.Interval{Start: 0, End: 9}, true},
		{"negative start", genome.Interval{Start: -1, End: 5}, false},
		{"past end", genome.Interval{Start: 5, End: 10}, false},
		{"inverted", genome.Interval{Start: 6, End: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.iv, 10))
		})
	}
}

func TestClamp(t *testing.T) {
	c, ok := Clamp(genome.Interval{Start: -3, End: 12}, 10)
	assert.True(t, ok)
	assert.Equal(t, genome.Interval{Start: 0, End: 9}, c)

	_, ok = Clamp(genome.Interval{Start: 12, End: 15}, 10)
	assert.False(t, ok, "entirely past the end")
}

func TestEncode_Basic(t *testing.T) {
	exons := []genome.Interval{{Start: 2, End: 3}, {Start: 6, End: 6}}

	enc := Encode(exons, 8)

	assert.Equal(t, "00110010", enc.String())
	assert.Equal(t, int64(3), enc.Ones())
	assert.Equal(t, enc, ParseEncoding(enc.String()))
}

func TestEncode_ZeroLength(t *testing.T) {
	enc := Encode([]genome.Interval{{Start: 0, End: 3}}, 0)
	assert.Equal(t, 0, enc.Len())
	assert.Equal(t, 0.0, Fraction(enc))
}

func TestEncode_OversizedLength(t *testing.T) {
	enc := Encode([]genome.Interval{{Start: 0, End: 9}}, MaxUnsplicedLen+1)
	assert.Equal(t, 0, enc.Len())
}

func TestEncode_DoesNotMutateInput(t *testing.T) {
	exons := []genome.Interval{{Start: 5, End: 30}, {Start: -2, End: 1}}
	before := append([]genome.Interval(nil), exons...)

	Encode(exons, 10)

	assert.Equal(t, before, exons)
}

func TestSortIntervals_Copy(t *testing.T) {
	in := []genome.Interval{{Start: 9, End: 10}, {Start: 1, End: 2}}
	out := SortIntervals(in)

	assert.Equal(t, []genome.Interval{{Start: 1, End: 2}, {Start: 9, End: 10}}, out)
	assert.Equal(t, int64(9), in[0].Start, "input untouched")
}

func TestDeriveIntrons_NestedExon(t *testing.T) {
	sorted := []genome.Interval{{Start: 0, End: 100}, {Start: 10, End: 20}, {Start: 30, End: 40}, {Start: 150, End: 160}}

	assert.True(t, HasOverlap(sorted))
	assert.Equal(t, []genome.Interval{{Start: 101, End: 149}}, DeriveIntrons(sorted))
}

func TestIntronsFromEncoding(t *testing.T) {
	assert.Empty(t, IntronsFromEncoding(ParseEncoding("0000")))
	assert.Empty(t, IntronsFromEncoding(ParseEncoding("0110")), "flanking zeros are not introns")
	assert.Equal(t,
		[]genome.Interval{{Start: 2, End: 3}, {Start: 5, End: 5}},
		IntronsFromEncoding(ParseEncoding("0100101")))
}

func TestValidateAndFraction(t *testing.T) {
	enc := ParseEncoding("1100")
	assert.True(t, Validate(enc, 2))
	assert.False(t, Validate(enc, 3))
	assert.Equal(t, 0.5, Fraction(enc))
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "", Flag(0).String())
	f := OverlappingExons | EncodingMismatch
	assert.Equal(t, "overlapping_exons,encoding_mismatch", f.String())
	assert.Equal(t, f, ParseFlags(f.String()))
	assert.Len(t, AllFlags(), 7)
}
