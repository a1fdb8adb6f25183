package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/inodb/vibe-splice/internal/pipeline"
	"github.com/inodb/vibe-splice/internal/splice"
	"github.com/inodb/vibe-splice/internal/stats"
)

// WriteRunSummary writes a summary of an encoding run.
func WriteRunSummary(w io.Writer, total int, r *pipeline.Report) {
	encoded := len(r.Results)
	consistent := 0
	for _, res := range r.Results {
		if res.Consistent {
			consistent++
		}
	}
	rate := float64(0)
	if encoded > 0 {
		rate = float64(consistent) / float64(encoded) * 100
	}

	fmt.Fprintf(w, "\nEncoding Summary:\n")
	fmt.Fprintf(w, "  Total transcripts:   %d\n", total)
	fmt.Fprintf(w, "  Not found:           %d\n", len(r.Exclusions.NotFound))
	fmt.Fprintf(w, "  Length mismatch:     %d\n", len(r.Exclusions.LengthMismatch))
	if r.Skipped > 0 {
		fmt.Fprintf(w, "  Other chromosomes:   %d\n", r.Skipped)
	}
	fmt.Fprintf(w, "  Encoded:             %d\n", encoded)
	fmt.Fprintf(w, "  Consistent:          %d (%.1f%%)\n", consistent, rate)

	counts := r.FlagCounts()
	for _, f := range splice.AllFlags() {
		if n := counts[f]; n > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", f.String()+":", n)
		}
	}
}

// WriteDatasetStats writes gene and transcript statistics.
func WriteDatasetStats(w io.Writer, d stats.Dataset) {
	fmt.Fprintf(w, "Number of genes in the data: %d\n", d.Genes)
	fmt.Fprintf(w, "Number of transcripts in the data: %d\n", d.Transcripts)
	fmt.Fprintf(w, "Average number of transcripts per gene: %.3f\n", d.TranscriptsPerGene.Mean)
	fmt.Fprintf(w, "Standard deviation of the number of transcripts per gene: %.3f\n", d.TranscriptsPerGene.Std)
	fmt.Fprintf(w, "Transcript length: mean %.1f, median %.1f, min %.0f, max %.0f\n",
		d.TranscriptLength.Mean, d.TranscriptLength.Median, d.TranscriptLength.Min, d.TranscriptLength.Max)
}

// WriteFractionSummary writes descriptive statistics of spliced fractions.
func WriteFractionSummary(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "Spliced fraction over %d transcripts: mean %.4f, std %.4f, median %.4f, min %.4f, max %.4f\n",
		s.Count, s.Mean, s.Std, s.Median, s.Min, s.Max)
}

const histogramWidth = 50

// WriteHistogram renders h as text bars. With logScale the bar lengths follow
// log10(count+1), matching a log-scaled count axis.
func WriteHistogram(w io.Writer, title string, h stats.Histogram, logScale bool) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(h.Counts) == 0 {
		fmt.Fprintf(w, "  (no data)\n")
		return
	}

	scale := func(c int) float64 {
		if logScale {
			return math.Log10(float64(c) + 1)
		}
		return float64(c)
	}
	peak := 0.0
	for _, c := range h.Counts {
		peak = max(peak, scale(c))
	}

	for i, c := range h.Counts {
		bar := 0
		if peak > 0 {
			bar = int(math.Round(scale(c) / peak * histogramWidth))
		}
		fmt.Fprintf(w, "  [%12.4g, %12.4g) %-*s %d\n",
			h.Edges[i], h.Edges[i+1], histogramWidth, strings.Repeat("#", bar), c)
	}
}
