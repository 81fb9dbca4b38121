package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/pipeline"
)

// Job is one entry of a batch manifest.
type Job struct {
	Name             string `yaml:"name"`
	pipeline.Options `yaml:",inline"`
}

type manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// ReadJobs decodes a manifest from r. Unknown fields are rejected, job
// names must be non-empty, and at least one job is required. Names must
// also be unique after BaseName, since output files are named by it.
// Jobs are not validated beyond that; the pipeline does it when they run.
func ReadJobs(r io.Reader) ([]Job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "manifest is empty")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode manifest")
	}
	if len(m.Jobs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "manifest has no jobs")
	}

	seen := make(map[string]string, len(m.Jobs))
	var errs []error
	for i, j := range m.Jobs {
		if j.Name == "" {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "job %d has no name", i+1))
			continue
		}
		base := BaseName(j.Name)
		if prev, ok := seen[base]; ok {
			errs = append(errs, errors.New(errors.ErrCodeInvalidFormat,
				"job %q writes the same files as job %q (%s)", j.Name, prev, base))
			continue
		}
		seen[base] = j.Name
	}
	if err := errors.Combine(errs...); err != nil {
		return nil, err
	}
	return m.Jobs, nil
}

// ImportJobs reads the manifest file at path.
func ImportJobs(path string) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "manifest %s does not exist", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJobs(f)
}
