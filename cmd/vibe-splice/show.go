package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-splice/internal/output"
	"github.com/inodb/vibe-splice/internal/splice"
	"github.com/inodb/vibe-splice/internal/store"
)

var showKeys = map[string]string{
	"store.path":   "store",
	"store.driver": "store-driver",
}

func newShowCmd() *cobra.Command {
	var byGene bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show stored results for a transcript or gene",
		Long: `Look up a transcript in the result store and print its row, including
the rebuilt exon/intron encoding. With --gene, print every stored
transcript of the gene.`,
		Example: `  vibe-splice show ENST00000269305 --store results.duckdb
  vibe-splice show ENSG00000141510 --gene --store results.sqlite`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, showKeys); err != nil {
				return err
			}
			return requireKeys(map[string]string{"store.path": "store"})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("store.path")
			driver := viper.GetString("store.driver")
			if driver == "" {
				driver = store.DriverForPath(path)
			}
			s, err := store.Open(driver, path)
			if err != nil {
				return err
			}
			defer s.Close()

			var results []*splice.Result
			if byGene {
				results, err = s.SearchByGene(args[0])
				if err != nil {
					return err
				}
			} else {
				r, err := s.LookupResult(args[0])
				if err != nil {
					return err
				}
				if r != nil {
					results = append(results, r)
				}
			}
			if len(results) == 0 {
				return fmt.Errorf("%s not found in %s", args[0], path)
			}

			w := output.NewTabWriter(cmd.OutOrStdout(), true)
			if err := w.WriteHeader(); err != nil {
				return err
			}
			for _, r := range results {
				if err := w.Write(r); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("store", "", "Result store written by 'vibe-splice encode'")
	cmd.Flags().String("store-driver", "", "Store driver: duckdb or sqlite (default: from file extension)")
	cmd.Flags().BoolVar(&byGene, "gene", false, "Treat the argument as a gene ID")

	return cmd
}
