package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/metrics"
	"github.com/inodb/vibe-splice/internal/output"
	"github.com/inodb/vibe-splice/internal/pipeline"
	"github.com/inodb/vibe-splice/internal/stats"
	"github.com/inodb/vibe-splice/internal/store"
	"github.com/inodb/vibe-splice/internal/tsv"
)

var encodeKeys = map[string]string{
	"data.transcripts":        "transcripts",
	"data.metadata":           "metadata",
	"data.exons":              "exons",
	"data.metadata_no_header": "metadata-no-header",
	"species":                 "species",
	"chromosomes":             "chrom",
	"workers":                 "workers",
	"memo_size":               "memo-size",
	"timeout":                 "timeout",
	"store.path":              "store",
	"store.driver":            "store-driver",
	"metrics.file":            "metrics-file",
}

var requiredInputs = map[string]string{
	"data.transcripts": "transcripts",
	"data.metadata":    "metadata",
	"data.exons":       "exons",
}

func newEncodeCmd() *cobra.Command {
	var (
		outputFile     string
		exclusionsFile string
		withEncoding   bool
		quiet          bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode transcripts as exon/intron sequences",
		Long: `Load the transcript, metadata and exon tables, exclude transcripts without
metadata or with a length mismatch, and encode every remaining transcript.
One tab-delimited row is written per encoded transcript; transcripts whose
encoding disagrees with their coding-sequence length are kept and flagged.

Every table needs a header row naming its columns (BioMart export names are
accepted). Use --metadata-no-header for metadata exported without one; its
columns must then be gene ID, transcript ID, start, end, chromosome.`,
		Example: `  vibe-splice encode --transcripts transcripts.tsv --metadata human_length.tsv --exons exons.tsv
  vibe-splice encode --chrom 1 --chrom 2 --with-encoding -o chr1_2.tsv
  vibe-splice encode --store results.duckdb --metrics-file /var/lib/node_exporter/vibe_splice.prom`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, encodeKeys); err != nil {
				return err
			}
			return requireKeys(requiredInputs)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			return runEncode(cmd.Context(), logger, encodeOptions{
				outputFile:     outputFile,
				exclusionsFile: exclusionsFile,
				withEncoding:   withEncoding,
				summary:        !quiet,
			})
		},
	}

	cmd.Flags().String("transcripts", "", "Transcript table (transcript_id, gene_id, species, unspliced_len, coding_seq_len)")
	cmd.Flags().String("metadata", "", "Metadata table (transcript_id, gene_id, chromosome, transcript_start, transcript_end)")
	cmd.Flags().Bool("metadata-no-header", false, "Metadata has no header row (BioMart column order)")
	cmd.Flags().String("exons", "", "Exon table (exon_id, transcript_id, exon_start, exon_end)")
	cmd.Flags().String("species", "", "Only encode transcripts of this species (default: all)")
	cmd.Flags().StringSlice("chrom", nil, "Only encode transcripts on these chromosomes (repeatable)")
	cmd.Flags().Int("workers", 0, "Worker goroutines (default: number of CPUs)")
	cmd.Flags().Int("memo-size", 0, "Memoize up to this many results (0 disables)")
	cmd.Flags().Duration("timeout", 0, "Stop dispatching transcripts after this duration (0 disables)")
	cmd.Flags().String("store", "", "Also write results to this DuckDB or SQLite database")
	cmd.Flags().String("store-driver", "", "Store driver: duckdb or sqlite (default: from file extension)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&exclusionsFile, "exclusions", "", "Write excluded transcripts and reasons to this file")
	cmd.Flags().BoolVar(&withEncoding, "with-encoding", false, "Add the 0/1 encoding column to the output")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the run summary")

	return cmd
}

type encodeOptions struct {
	outputFile     string
	exclusionsFile string
	withEncoding   bool
	summary        bool
}

func runEncode(ctx context.Context, logger *zap.Logger, opts encodeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	loader := tsv.NewLoader()
	loader.SetLogger(logger)
	loader.SetMetadataHeaderless(viper.GetBool("data.metadata_no_header"))
	tables, err := loader.LoadAll(ctx, tsv.Paths{
		Transcripts: viper.GetString("data.transcripts"),
		Metadata:    viper.GetString("data.metadata"),
		Exons:       viper.GetString("data.exons"),
	})
	if err != nil {
		return err
	}
	logger.Info("loaded tables",
		zap.Int("transcripts", len(tables.Transcripts)),
		zap.Int("metadata", len(tables.Metadata)),
		zap.Int("exons", len(tables.Exons)))

	transcripts := genome.FilterSpecies(tables.Transcripts, viper.GetString("species"))
	if len(transcripts) == 0 {
		return fmt.Errorf("no transcripts for species %q", viper.GetString("species"))
	}

	runOpts := pipeline.Options{
		Workers:        viper.GetInt("workers"),
		Chromosomes:    viper.GetStringSlice("chromosomes"),
		RequireResults: true,
		Logger:         logger,
	}
	if size := viper.GetInt("memo_size"); size > 0 {
		if runOpts.Memo, err = pipeline.NewMemo(size); err != nil {
			return err
		}
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	report, runErr := pipeline.Run(ctx, pipeline.Input{
		Transcripts: transcripts,
		Metadata:    tables.Metadata,
		Exons:       tables.Exons,
	}, runOpts)
	if runErr != nil && !errors.Is(runErr, context.DeadlineExceeded) && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		logger.Warn("run interrupted, writing partial results",
			zap.Int("encoded", len(report.Results)),
			zap.Error(runErr))
	}

	if err := writeResults(opts.outputFile, opts.withEncoding, report); err != nil {
		return err
	}

	if opts.exclusionsFile != "" {
		if err := writeExclusionsFile(opts.exclusionsFile, report); err != nil {
			return err
		}
	}

	if path := viper.GetString("store.path"); path != "" {
		if err := persistReport(path, viper.GetString("store.driver"), report); err != nil {
			return err
		}
		logger.Info("stored results", zap.String("path", path))
	}

	if path := viper.GetString("metrics.file"); path != "" {
		rec := metrics.NewRecorder()
		rec.Observe(report)
		if err := rec.WriteTextfile(path); err != nil {
			return err
		}
	}

	if opts.summary {
		output.WriteRunSummary(os.Stderr, len(transcripts), report)
		fractions := stats.Values(stats.SplicedFractions(report.Results, true))
		output.WriteFractionSummary(os.Stderr, stats.Summarize(fractions))
	}

	return runErr
}

func writeResults(path string, withEncoding bool, report *pipeline.Report) error {
	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := output.NewTabWriter(out, withEncoding)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range report.Results {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("writing result %s: %w", r.Transcript.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func writeExclusionsFile(path string, report *pipeline.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating exclusions file: %w", err)
	}
	defer f.Close()

	if err := output.WriteExclusions(f, &report.Exclusions); err != nil {
		return fmt.Errorf("writing exclusions: %w", err)
	}
	return nil
}

func persistReport(path, driver string, report *pipeline.Report) error {
	if driver == "" {
		driver = store.DriverForPath(path)
	}
	s, err := store.Open(driver, path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Clear(); err != nil {
		return err
	}
	if err := s.WriteResults(report.Results); err != nil {
		return fmt.Errorf("writing results to store: %w", err)
	}
	if err := s.WriteExclusions(&report.Exclusions); err != nil {
		return fmt.Errorf("writing exclusions to store: %w", err)
	}
	return nil
}
