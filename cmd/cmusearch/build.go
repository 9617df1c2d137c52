package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/scottylabs/cmusearch"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var corpusPath, configPath, outPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an index from a corpus and configuration, and cache it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := loadCorpus(corpusPath)
			if err != nil {
				return err
			}
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			var opts []cmusearch.BuildOption
			if strict {
				opts = append(opts, cmusearch.WithStrictSources())
			}

			store, err := cmusearch.Build(sources, config, opts...)
			if err != nil {
				return errors.Wrap(err, "build index")
			}

			encoded, err := cmusearch.Encode(store)
			if err != nil {
				return errors.Wrap(err, "encode index")
			}

			if err := os.WriteFile(outPath, []byte(encoded), 0o644); err != nil {
				return errors.Wrapf(err, "write cache %q", outPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d document(s) across %d source(s); cache written to %s\n",
				store.DocCount(), len(sources), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to corpus JSON (source_id -> doc_id -> field -> value)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config JSON (source_id -> field -> weight)")
	cmd.Flags().StringVar(&outPath, "out", "index.cache", "path to write the encoded index cache")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject source id mismatches between corpus and config")
	cmd.MarkFlagRequired("corpus")
	cmd.MarkFlagRequired("config")

	return cmd
}
