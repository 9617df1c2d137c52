package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/scottylabs/cmusearch"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var corpusPath, configPath, cachePath string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query terms...>",
		Short: "Restore an index from a cache file and run a query against it",
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

			encoded, err := os.ReadFile(cachePath)
			if err != nil {
				return errors.Wrapf(err, "read cache %q", cachePath)
			}

			engine := cmusearch.New()
			if err := engine.InitEngineFromCache(string(encoded), sources, config); err != nil {
				if errors.Is(err, cmusearch.ErrVersionMismatch) {
					return errors.Wrap(err, "cache is stale; rebuild with `cmusearch build`")
				}
				return errors.Wrap(err, "restore engine from cache")
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
	cmd.Flags().StringVar(&cachePath, "cache", "index.cache", "path to the encoded index cache")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	cmd.MarkFlagRequired("corpus")
	cmd.MarkFlagRequired("config")

	return cmd
}
