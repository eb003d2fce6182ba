// Package synthfastq writes random paired-end gzip FASTQ files, and a
// matching samplesheet, for smoke testing RNA-seq pipelines. The reads are
// not drawn from any genome, so aligners will place almost none of them.
package synthfastq

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	DefaultOutputDir  = "test_data/fastq"
	DefaultNumReads   = 10000
	DefaultReadLength = 75
)

// DefaultSamples are small public RNA-seq runs, used only as names.
var DefaultSamples = []string{"SRR6357070", "SRR6357071", "SRR6357072"}

type Options struct {
	OutputDir string

	// NumReads is the number of read pairs per sample.
	NumReads   int
	ReadLength int
	Samples    []string

	// Seed makes output reproducible. Zero seeds from the clock.
	Seed int64

	// Concurrency bounds how many samples are written at once.
	Concurrency int
}

func DefaultOptions() Options {
	return Options{
		OutputDir:   DefaultOutputDir,
		NumReads:    DefaultNumReads,
		ReadLength:  DefaultReadLength,
		Samples:     append([]string(nil), DefaultSamples...),
		Concurrency: runtime.NumCPU(),
	}
}

func (o Options) Validate() error {
	if o.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if o.NumReads < 1 {
		return fmt.Errorf("num_reads must be positive, got %d", o.NumReads)
	}
	if o.ReadLength < 1 {
		return fmt.Errorf("read_length must be positive, got %d", o.ReadLength)
	}
	if len(o.Samples) == 0 {
		return fmt.Errorf("at least one sample name is required")
	}

	seen := make(map[string]struct{}, len(o.Samples))
	for _, s := range o.Samples {
		if s == "" {
			return fmt.Errorf("sample names must not be empty")
		}
		if strings.ContainsAny(s, `/\`) {
			return fmt.Errorf("sample name %q contains a path separator", s)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("sample name %q given more than once", s)
		}
		seen[s] = struct{}{}
	}

	return nil
}

// ParseSampleList splits a comma and/or whitespace separated list of names.
func ParseSampleList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
