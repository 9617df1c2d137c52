package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/scottylabs/cmusearch"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var corpusPath, configPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "query <query terms...>",
		Short: "Build an index in memory and run a single query against it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := loadCorpus(corpusPath)
			if err != nil {
				return err
			}
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			engine := cmusearch.New()
			if err := engine.InitEngine(sources, config); err != nil {
				return errors.Wrap(err, "initialize engine")
			}

			results, err := engine.SearchDocs(strings.Join(args, " "), limit)
			if err != nil {
				return errors.Wrap(err, "search")
			}

			printResults(cmd, results)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to corpus JSON")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config JSON")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	cmd.MarkFlagRequired("corpus")
	cmd.MarkFlagRequired("config")

	return cmd
}

func printResults(cmd *cobra.Command, results []cmusearch.Result) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "no matches")
		return
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. [%s/%s] score=%.4f %v\n", i+1, r.SourceID, r.DocID, r.Score, r.Document)
	}
}
