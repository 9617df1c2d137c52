package main

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/scottylabs/cmusearch"
)

// loadCorpus reads a Sources value from a JSON file shaped exactly like
// cmusearch.Sources: source_id -> doc_id -> field -> value.
func loadCorpus(path string) (cmusearch.Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read corpus %q", path)
	}
	var sources cmusearch.Sources
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, errors.Wrapf(err, "parse corpus %q", path)
	}
	return sources, nil
}

// loadConfig reads a Config value from a JSON file shaped exactly like
// cmusearch.Config: source_id -> field -> weight.
func loadConfig(path string) (cmusearch.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %q", path)
	}
	var config cmusearch.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "parse config %q", path)
	}
	return config, nil
}
