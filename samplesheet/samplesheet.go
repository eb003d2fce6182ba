// Package samplesheet renders resolved samples as an nf-core/rnaseq style
// samplesheet: sample,fastq_1,fastq_2,strandedness.
package samplesheet

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnaseqprep/pairing"
	"github.com/gocarina/gocsv"
)

// Strandedness is the library strandedness label, applied to every row.
type Strandedness string

const (
	Auto       Strandedness = "auto"
	Unstranded Strandedness = "unstranded"
	Forward    Strandedness = "forward"
	Reverse    Strandedness = "reverse"
)

// Strandednesses lists the accepted labels.
var Strandednesses = []Strandedness{Auto, Unstranded, Forward, Reverse}

func ParseStrandedness(s string) (Strandedness, error) {
	for _, v := range Strandednesses {
		if string(v) == s {
			return v, nil
		}
	}

	names := make([]string, len(Strandednesses))
	for i, v := range Strandednesses {
		names[i] = string(v)
	}

	return "", fmt.Errorf("strandedness %q not recognized, expected one of %s", s, strings.Join(names, "|"))
}

// PathRemap rewrites local paths into external storage paths by plain
// substring replacement. It does nothing unless both prefixes are set.
type PathRemap struct {
	Local  string
	Remote string
}

func (p PathRemap) Active() bool {
	return p.Local != "" && p.Remote != ""
}

func (p PathRemap) Apply(path string) string {
	if !p.Active() || path == "" {
		return path
	}

	return strings.ReplaceAll(path, p.Local, p.Remote)
}

// Row is one samplesheet line.
type Row struct {
	Sample       string       `csv:"sample"`
	Fastq1       string       `csv:"fastq_1"`
	Fastq2       string       `csv:"fastq_2"`
	Strandedness Strandedness `csv:"strandedness"`
}

// FromSamples builds one row per sample, sorted by sample name. Single-end
// samples get an empty fastq_2.
func FromSamples(samples pairing.Samples, strandedness Strandedness, remap PathRemap) []Row {
	rows := make([]Row, 0, len(samples))
	for name, s := range samples {
		rows = append(rows, Row{
			Sample:       name,
			Fastq1:       remap.Apply(s.Mate1),
			Fastq2:       remap.Apply(s.Mate2),
			Strandedness: strandedness,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Sample < rows[j].Sample
	})

	return rows
}

// Write emits the header and rows, in the order given.
func Write(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteFile creates or truncates path and writes rows to it.
func WriteFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := Write(f, rows); err != nil {
		f.Close()
		return err
	}

	return pfx.Err(f.Close())
}

// Summary counts the rows of a samplesheet by sequencing mode.
type Summary struct {
	Total  int
	Paired int
	Single int
}

func Summarize(rows []Row) Summary {
	s := Summary{Total: len(rows)}
	for _, row := range rows {
		if row.Fastq2 != "" {
			s.Paired++
		}
	}
	s.Single = s.Total - s.Paired

	return s
}
