package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/output"
	"github.com/inodb/vibe-splice/internal/stats"
	"github.com/inodb/vibe-splice/internal/store"
	"github.com/inodb/vibe-splice/internal/tsv"
)

var statsKeys = map[string]string{
	"data.metadata":           "metadata",
	"data.metadata_no_header": "metadata-no-header",
	"store.path":              "store",
	"store.driver":            "store-driver",
}

func newStatsCmd() *cobra.Command {
	var (
		outputFile     string
		includeSuspect bool
		bins           int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Describe the dataset and the stored spliced fractions",
		Long: `Print gene and transcript statistics from the metadata table together
with a log-scaled histogram of transcript lengths. When a result store is
given, also summarize the spliced fractions stored by 'vibe-splice encode'.`,
		Example: `  vibe-splice stats --metadata human_length.tsv
  vibe-splice stats --metadata human_length.tsv --store results.duckdb --include-suspect`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, statsKeys); err != nil {
				return err
			}
			if bins <= 0 {
				return &usageError{fmt.Errorf("--bins must be positive, got %d", bins)}
			}
			if viper.GetString("data.metadata") == "" && viper.GetString("store.path") == "" {
				return &usageError{fmt.Errorf("--metadata or --store is required")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return runStats(cmd.Context(), out, bins, includeSuspect)
		},
	}

	cmd.Flags().String("metadata", "", "Metadata table (transcript_id, gene_id, chromosome, transcript_start, transcript_end)")
	cmd.Flags().Bool("metadata-no-header", false, "Metadata has no header row (BioMart column order)")
	cmd.Flags().String("store", "", "Result store written by 'vibe-splice encode'")
	cmd.Flags().String("store-driver", "", "Store driver: duckdb or sqlite (default: from file extension)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&includeSuspect, "include-suspect", false, "Include flagged transcripts in the fraction statistics")
	cmd.Flags().IntVar(&bins, "bins", 20, "Histogram bins")

	return cmd
}

func runStats(ctx context.Context, w io.Writer, bins int, includeSuspect bool) error {
	if path := viper.GetString("data.metadata"); path != "" {
		logger, err := newLogger()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer logger.Sync()

		loader := tsv.NewLoader()
		loader.SetLogger(logger)
		loader.SetMetadataHeaderless(viper.GetBool("data.metadata_no_header"))
		table, err := loader.LoadMetadata(ctx, path)
		if err != nil {
			return err
		}
		meta := genome.DedupMetadata(table)

		output.WriteDatasetStats(w, stats.DescribeDataset(meta))
		h := stats.NewHistogram(stats.TranscriptLengths(meta), bins)
		output.WriteHistogram(w, "Transcript length (log-scaled counts)", h, true)
	}

	if path := viper.GetString("store.path"); path != "" {
		driver := viper.GetString("store.driver")
		if driver == "" {
			driver = store.DriverForPath(path)
		}
		s, err := store.Open(driver, path)
		if err != nil {
			return err
		}
		defer s.Close()

		fractions, err := s.Fractions(includeSuspect)
		if err != nil {
			return err
		}
		values := stats.Values(fractions)
		fmt.Fprintln(w)
		output.WriteFractionSummary(w, stats.Summarize(values))
		h := stats.NewHistogramRange(values, bins, 0, 1)
		output.WriteHistogram(w, "Spliced fraction", h, false)
	}
	return nil
}
