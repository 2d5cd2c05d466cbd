// Package jobfile provides loading and validation of jobs.yaml definition
// files. A job file declares a derivation prefix and a list of named job
// definitions; the derived identifier for each definition follows from its
// parameters alone, so the file never stores identifiers.
package jobfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crawlkit/jobident/jobid"
)

// File represents a jobs.yaml definition file.
type File struct {
	// Prefix is the namespace every definition's identifier is derived
	// under. Must satisfy jobid.CheckPrefix.
	Prefix string `yaml:"prefix"`

	// Jobs are the job definitions.
	Jobs []Definition `yaml:"jobs"`
}

// Definition is one declared job. The parameter fields mirror jobid.Params;
// a YAML null or an omitted key is an absent field.
type Definition struct {
	// Name labels the definition within the file. Names are for humans and
	// tooling; they never influence the derived identifier.
	Name string `yaml:"name"`

	Keyword           jobid.Field `yaml:"keyword"`
	Platform          jobid.Field `yaml:"platform"`
	Label             jobid.Field `yaml:"label"`
	PostStartDatetime jobid.Field `yaml:"post_start_datetime"`
	PostEndDatetime   jobid.Field `yaml:"post_end_datetime"`
}

// Params returns the definition's identity parameters.
func (d Definition) Params() jobid.Params {
	return jobid.Params{
		Keyword:           d.Keyword,
		Platform:          d.Platform,
		Label:             d.Label,
		PostStartDatetime: d.PostStartDatetime,
		PostEndDatetime:   d.PostEndDatetime,
	}
}

// Load reads and validates a job file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates job file contents.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file-level invariants: a derivable prefix and
// non-empty, unique definition names.
func (f *File) Validate() error {
	if err := jobid.CheckPrefix(f.Prefix); err != nil {
		return fmt.Errorf("invalid prefix: %w", err)
	}

	seen := make(map[string]bool, len(f.Jobs))
	for i, d := range f.Jobs {
		if d.Name == "" {
			return fmt.Errorf("job %d has no name", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate job name %q", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// IDs returns the derived identifier for every definition, keyed by name.
// Definitions with identical parameters derive identical identifiers; IDs
// makes such duplicates visible to tooling.
func (f *File) IDs() map[string]string {
	ids := make(map[string]string, len(f.Jobs))
	for _, d := range f.Jobs {
		ids[d.Name] = jobid.Derive(d.Params(), f.Prefix)
	}
	return ids
}
